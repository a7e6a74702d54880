package lending

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Repayment is an append-only ledger entry recording money received
// against a loan. Repayments are never updated or deleted.
type Repayment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	LoanID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method     string          `gorm:"type:varchar(50)"`
	Note       string          `gorm:"type:varchar(500)"`
	PaidOn     time.Time       `gorm:"not null;index"`
	RecordedBy uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Repayment) TableName() string {
	return "repayments"
}

// NewRepayment creates a validated ledger entry. paidOn defaults to
// the current time when zero.
func NewRepayment(loanID, recordedBy uuid.UUID, amount decimal.Decimal, method, note string, paidOn time.Time) (*Repayment, error) {
	if loanID == uuid.Nil {
		return nil, shared.NewValidationError("loan_id", "cannot be empty")
	}
	if recordedBy == uuid.Nil {
		return nil, shared.NewValidationError("recorded_by", "cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("amount", "must be positive")
	}
	method = strings.TrimSpace(method)
	if len(method) > 50 {
		return nil, shared.NewValidationError("method", "cannot exceed 50 characters")
	}
	if len(note) > 500 {
		return nil, shared.NewValidationError("note", "cannot exceed 500 characters")
	}
	if paidOn.IsZero() {
		paidOn = time.Now()
	}

	return &Repayment{
		ID:         uuid.New(),
		LoanID:     loanID,
		Amount:     amount,
		Method:     method,
		Note:       note,
		PaidOn:     paidOn,
		RecordedBy: recordedBy,
		CreatedAt:  time.Now(),
	}, nil
}
