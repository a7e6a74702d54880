package lending

import (
	"time"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LoanCreatedEvent is raised when a loan application is recorded
type LoanCreatedEvent struct {
	shared.BaseDomainEvent
	LoanID        uuid.UUID       `json:"loan_id"`
	CreditorID    uuid.UUID       `json:"creditor_id"`
	DebtorID      uuid.UUID       `json:"debtor_id"`
	Principal     decimal.Decimal `json:"principal"`
	AnnualRatePct decimal.Decimal `json:"annual_rate_pct"`
	TermMonths    int             `json:"term_months"`
}

// EventType returns the event type name
func (e *LoanCreatedEvent) EventType() string {
	return "LoanCreated"
}

// NewLoanCreatedEvent creates a new LoanCreatedEvent
func NewLoanCreatedEvent(l *Loan) *LoanCreatedEvent {
	return &LoanCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LoanCreated", "Loan", l.ID),
		LoanID:          l.ID,
		CreditorID:      l.CreditorID,
		DebtorID:        l.DebtorID,
		Principal:       l.Principal,
		AnnualRatePct:   l.AnnualRatePct,
		TermMonths:      l.TermMonths,
	}
}

// LoanApprovedEvent is raised when a pending loan is activated
type LoanApprovedEvent struct {
	shared.BaseDomainEvent
	LoanID     uuid.UUID       `json:"loan_id"`
	CreditorID uuid.UUID       `json:"creditor_id"`
	DebtorID   uuid.UUID       `json:"debtor_id"`
	Principal  decimal.Decimal `json:"principal"`
	StartDate  time.Time       `json:"start_date"`
}

// EventType returns the event type name
func (e *LoanApprovedEvent) EventType() string {
	return "LoanApproved"
}

// NewLoanApprovedEvent creates a new LoanApprovedEvent
func NewLoanApprovedEvent(l *Loan) *LoanApprovedEvent {
	var start time.Time
	if l.StartDate != nil {
		start = *l.StartDate
	}
	return &LoanApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LoanApproved", "Loan", l.ID),
		LoanID:          l.ID,
		CreditorID:      l.CreditorID,
		DebtorID:        l.DebtorID,
		Principal:       l.Principal,
		StartDate:       start,
	}
}

// LoanRejectedEvent is raised when a pending loan is declined
type LoanRejectedEvent struct {
	shared.BaseDomainEvent
	LoanID     uuid.UUID `json:"loan_id"`
	CreditorID uuid.UUID `json:"creditor_id"`
	DebtorID   uuid.UUID `json:"debtor_id"`
	DecidedAt  time.Time `json:"decided_at"`
}

// EventType returns the event type name
func (e *LoanRejectedEvent) EventType() string {
	return "LoanRejected"
}

// NewLoanRejectedEvent creates a new LoanRejectedEvent
func NewLoanRejectedEvent(l *Loan) *LoanRejectedEvent {
	var decided time.Time
	if l.DecidedAt != nil {
		decided = *l.DecidedAt
	}
	return &LoanRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LoanRejected", "Loan", l.ID),
		LoanID:          l.ID,
		CreditorID:      l.CreditorID,
		DebtorID:        l.DebtorID,
		DecidedAt:       decided,
	}
}

// LoanClosedEvent is raised when an active loan is fully repaid
type LoanClosedEvent struct {
	shared.BaseDomainEvent
	LoanID   uuid.UUID `json:"loan_id"`
	DebtorID uuid.UUID `json:"debtor_id"`
	ClosedAt time.Time `json:"closed_at"`
}

// EventType returns the event type name
func (e *LoanClosedEvent) EventType() string {
	return "LoanClosed"
}

// NewLoanClosedEvent creates a new LoanClosedEvent
func NewLoanClosedEvent(l *Loan) *LoanClosedEvent {
	var closed time.Time
	if l.ClosedAt != nil {
		closed = *l.ClosedAt
	}
	return &LoanClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LoanClosed", "Loan", l.ID),
		LoanID:          l.ID,
		DebtorID:        l.DebtorID,
		ClosedAt:        closed,
	}
}
