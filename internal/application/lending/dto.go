package lending

import (
	"time"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/shopspring/decimal"
)

// CreateLoanInput carries the fields needed to open a loan application.
// CreditorID may be nil for creditor actors, in which case their own
// profile is used.
type CreateLoanInput struct {
	CreditorID    *uuid.UUID
	DebtorID      uuid.UUID
	Principal     decimal.Decimal
	AnnualRatePct decimal.Decimal
	TermMonths    int
	StartDate     *time.Time
}

// PostRepaymentInput carries the fields for a ledger entry
type PostRepaymentInput struct {
	Amount decimal.Decimal
	Method string
	Note   string
	PaidOn *time.Time
}

// LoanDTO is the transport representation of a loan
type LoanDTO struct {
	ID                 uuid.UUID          `json:"id"`
	CreditorID         uuid.UUID          `json:"creditor_id"`
	DebtorID           uuid.UUID          `json:"debtor_id"`
	Principal          decimal.Decimal    `json:"principal"`
	AnnualRatePct      decimal.Decimal    `json:"annual_rate_pct"`
	TermMonths         int                `json:"term_months"`
	Status             lending.LoanStatus `json:"status"`
	MonthlyInstallment *decimal.Decimal   `json:"monthly_installment,omitempty"`
	StartDate          *time.Time         `json:"start_date,omitempty"`
	DecidedAt          *time.Time         `json:"decided_at,omitempty"`
	ClosedAt           *time.Time         `json:"closed_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// LoanDetailDTO extends LoanDTO with repayment progress
type LoanDetailDTO struct {
	LoanDTO
	TotalDue    decimal.Decimal `json:"total_due"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Repayments  []RepaymentDTO  `json:"repayments"`
}

// RepaymentDTO is the transport representation of a ledger entry
type RepaymentDTO struct {
	ID         uuid.UUID       `json:"id"`
	LoanID     uuid.UUID       `json:"loan_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method,omitempty"`
	Note       string          `json:"note,omitempty"`
	PaidOn     time.Time       `json:"paid_on"`
	RecordedBy uuid.UUID       `json:"recorded_by"`
}

// PostRepaymentResult reports the outcome of a posting, including
// whether it settled the loan.
type PostRepaymentResult struct {
	Repayment  RepaymentDTO    `json:"repayment"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
	LoanClosed bool            `json:"loan_closed"`
}

// ArrearsRowDTO is one delinquent loan in an arrears report
type ArrearsRowDTO struct {
	LoanID         uuid.UUID       `json:"loan_id"`
	CreditorID     uuid.UUID       `json:"creditor_id"`
	DebtorID       uuid.UUID       `json:"debtor_id"`
	MonthsElapsed  int             `json:"months_elapsed"`
	ExpectedToDate decimal.Decimal `json:"expected_to_date"`
	Paid           decimal.Decimal `json:"paid"`
	Deficit        decimal.Decimal `json:"deficit"`
}

// ToLoanDTO maps a loan aggregate to its transport form. The
// installment is absent until the loan has been activated.
func ToLoanDTO(loan *lending.Loan) LoanDTO {
	var installment *decimal.Decimal
	if loan.MonthlyInstallment != nil {
		v := *loan.MonthlyInstallment
		installment = &v
	}
	return LoanDTO{
		ID:                 loan.ID,
		CreditorID:         loan.CreditorID,
		DebtorID:           loan.DebtorID,
		Principal:          loan.Principal.Round(2),
		AnnualRatePct:      loan.AnnualRatePct,
		TermMonths:         loan.TermMonths,
		Status:             loan.Status,
		MonthlyInstallment: installment,
		StartDate:          loan.StartDate,
		DecidedAt:          loan.DecidedAt,
		ClosedAt:           loan.ClosedAt,
		CreatedAt:          loan.CreatedAt,
	}
}

// ToRepaymentDTO maps a ledger entry to its transport form
func ToRepaymentDTO(r *lending.Repayment) RepaymentDTO {
	return RepaymentDTO{
		ID:         r.ID,
		LoanID:     r.LoanID,
		Amount:     r.Amount.Round(2),
		Method:     r.Method,
		Note:       r.Note,
		PaidOn:     r.PaidOn,
		RecordedBy: r.RecordedBy,
	}
}
