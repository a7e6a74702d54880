package lending

import (
	"time"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LoanStatus represents the lifecycle state of a loan
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "pending"
	LoanStatusActive   LoanStatus = "active"
	LoanStatusRejected LoanStatus = "rejected"
	LoanStatusClosed   LoanStatus = "closed"
)

// IsValid reports whether the status is a known lifecycle state
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusPending, LoanStatusActive, LoanStatusRejected, LoanStatusClosed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s LoanStatus) IsTerminal() bool {
	return s == LoanStatusRejected || s == LoanStatusClosed
}

// closeTolerance absorbs cent-level rounding drift between the sum of
// posted repayments and installment*term when deciding closure.
var closeTolerance = decimal.NewFromFloat(0.0001)

// arrearsThreshold is the smallest deficit that counts as arrears.
var arrearsThreshold = decimal.NewFromFloat(0.01)

// Loan is the aggregate root for a single loan between a creditor and
// a debtor. It owns the lifecycle (pending -> active/rejected,
// active -> closed) and the derived amortization quantities.
type Loan struct {
	shared.BaseAggregateRoot
	CreditorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	DebtorID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Principal     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AnnualRatePct decimal.Decimal `gorm:"type:decimal(9,4);not null"`
	TermMonths    int             `gorm:"not null"`
	Status        LoanStatus      `gorm:"type:varchar(20);not null;default:'pending';index"`
	// MonthlyInstallment is fixed once at approval and read back from
	// storage afterwards. Nil while the loan is pending or rejected.
	MonthlyInstallment *decimal.Decimal `gorm:"type:decimal(18,2)"`
	StartDate          *time.Time
	DecidedAt          *time.Time
	ClosedAt           *time.Time
}

// TableName returns the table name for GORM
func (Loan) TableName() string {
	return "loans"
}

// NewLoan creates a pending loan. startDate may be supplied at creation
// but is overwritten with the decision date on approval.
func NewLoan(creditorID, debtorID uuid.UUID, principal, annualRatePct decimal.Decimal, termMonths int, startDate *time.Time) (*Loan, error) {
	if creditorID == uuid.Nil {
		return nil, shared.NewValidationError("creditor_id", "cannot be empty")
	}
	if debtorID == uuid.Nil {
		return nil, shared.NewValidationError("debtor_id", "cannot be empty")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("principal", "must be positive")
	}
	if annualRatePct.IsNegative() {
		return nil, shared.NewValidationError("annual_rate_pct", "cannot be negative")
	}
	if termMonths < 1 {
		return nil, shared.NewValidationError("term_months", "must be at least 1")
	}
	if termMonths > 600 {
		return nil, shared.NewValidationError("term_months", "cannot exceed 600")
	}

	loan := &Loan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CreditorID:        creditorID,
		DebtorID:          debtorID,
		Principal:         principal,
		AnnualRatePct:     annualRatePct,
		TermMonths:        termMonths,
		Status:            LoanStatusPending,
		StartDate:         startDate,
	}
	loan.AddDomainEvent(NewLoanCreatedEvent(loan))
	return loan, nil
}

// Approve activates a pending loan. The decision date becomes the
// start date of the repayment schedule.
func (l *Loan) Approve(decidedAt time.Time) error {
	if l.Status != LoanStatusPending {
		return shared.NewIllegalStateTransitionError(string(l.Status), string(LoanStatusActive))
	}
	installment := MonthlyPayment(l.Principal, l.AnnualRatePct, l.TermMonths).Round(2)
	l.Status = LoanStatusActive
	l.MonthlyInstallment = &installment
	l.DecidedAt = &decidedAt
	l.StartDate = &decidedAt
	l.UpdatedAt = decidedAt
	l.IncrementVersion()
	l.AddDomainEvent(NewLoanApprovedEvent(l))
	return nil
}

// Reject declines a pending loan
func (l *Loan) Reject(decidedAt time.Time) error {
	if l.Status != LoanStatusPending {
		return shared.NewIllegalStateTransitionError(string(l.Status), string(LoanStatusRejected))
	}
	l.Status = LoanStatusRejected
	l.DecidedAt = &decidedAt
	l.UpdatedAt = decidedAt
	l.IncrementVersion()
	l.AddDomainEvent(NewLoanRejectedEvent(l))
	return nil
}

// Close marks an active loan as fully repaid
func (l *Loan) Close(closedAt time.Time) error {
	if l.Status != LoanStatusActive {
		return shared.NewIllegalStateTransitionError(string(l.Status), string(LoanStatusClosed))
	}
	l.Status = LoanStatusClosed
	l.ClosedAt = &closedAt
	l.UpdatedAt = closedAt
	l.IncrementVersion()
	l.AddDomainEvent(NewLoanClosedEvent(l))
	return nil
}

// Installment returns the stored monthly installment, or zero while
// the loan has not been activated.
func (l *Loan) Installment() decimal.Decimal {
	if l.MonthlyInstallment == nil {
		return decimal.Zero
	}
	return *l.MonthlyInstallment
}

// TotalDue returns the total amount owed over the full term.
// For zero-rate loans only the principal is owed.
func (l *Loan) TotalDue() decimal.Decimal {
	if l.AnnualRatePct.IsZero() {
		return l.Principal
	}
	return l.Installment().Mul(decimal.NewFromInt(int64(l.TermMonths)))
}

// Outstanding returns the amount still owed after the given repayments
func (l *Loan) Outstanding(paid decimal.Decimal) decimal.Decimal {
	outstanding := l.TotalDue().Sub(paid)
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}

// ShouldClose reports whether the paid total satisfies the debt,
// within the rounding tolerance.
func (l *Loan) ShouldClose(paid decimal.Decimal) bool {
	return paid.Add(closeTolerance).GreaterThanOrEqual(l.TotalDue())
}

// CanReceiveRepayment reports whether repayments may be posted
func (l *Loan) CanReceiveRepayment() bool {
	return l.Status == LoanStatusActive
}

// IsPending reports whether the loan awaits a decision
func (l *Loan) IsPending() bool {
	return l.Status == LoanStatusPending
}

// IsActive reports whether the loan is being repaid
func (l *Loan) IsActive() bool {
	return l.Status == LoanStatusActive
}

// IsClosed reports whether the loan has been fully repaid
func (l *Loan) IsClosed() bool {
	return l.Status == LoanStatusClosed
}
