package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRecord is a read model joining repayments with their loan and
// debtor. It is optimized for reporting queries and never written to.
type PaymentRecord struct {
	RepaymentID uuid.UUID       `json:"repayment_id"`
	LoanID      uuid.UUID       `json:"loan_id"`
	DebtorID    uuid.UUID       `json:"debtor_id"`
	DebtorName  string          `json:"debtor_name"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Note        string          `json:"note"`
	PaidOn      time.Time       `json:"paid_on"`
}

// PaymentReportFilter defines filtering options for payment reports
type PaymentReportFilter struct {
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
	CreditorID *uuid.UUID `json:"creditor_id,omitempty"`
	DebtorID   *uuid.UUID `json:"debtor_id,omitempty"`
	// Limit caps the result set; 0 means no cap
	Limit int `json:"limit,omitempty"`
}

// PaymentReportRepository defines the interface for payment report queries
type PaymentReportRepository interface {
	// FindPayments returns payment records ordered by paid_on descending
	FindPayments(ctx context.Context, filter PaymentReportFilter) ([]PaymentRecord, error)
}
