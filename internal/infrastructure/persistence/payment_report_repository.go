package persistence

import (
	"context"

	"github.com/lendledger/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormPaymentReportRepository implements report.PaymentReportRepository
// with a read-only join over the repayment ledger, loans and debtors.
type GormPaymentReportRepository struct {
	db *gorm.DB
}

// NewGormPaymentReportRepository creates a new GormPaymentReportRepository
func NewGormPaymentReportRepository(db *gorm.DB) *GormPaymentReportRepository {
	return &GormPaymentReportRepository{db: db}
}

// FindPayments returns payment records matching the filter, newest first
func (r *GormPaymentReportRepository) FindPayments(ctx context.Context, filter report.PaymentReportFilter) ([]report.PaymentRecord, error) {
	records := make([]report.PaymentRecord, 0)

	query := r.db.WithContext(ctx).
		Table("repayments").
		Select(`repayments.id AS repayment_id,
			repayments.loan_id AS loan_id,
			loans.debtor_id AS debtor_id,
			debtors.full_name AS debtor_name,
			repayments.amount AS amount,
			repayments.method AS method,
			repayments.note AS note,
			repayments.paid_on AS paid_on`).
		Joins("JOIN loans ON loans.id = repayments.loan_id").
		Joins("JOIN debtors ON debtors.id = loans.debtor_id")

	if filter.From != nil {
		query = query.Where("repayments.paid_on >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("repayments.paid_on <= ?", *filter.To)
	}
	if filter.CreditorID != nil {
		query = query.Where("loans.creditor_id = ?", *filter.CreditorID)
	}
	if filter.DebtorID != nil {
		query = query.Where("loans.debtor_id = ?", *filter.DebtorID)
	}

	query = query.Order("repayments.paid_on DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Ensure GormPaymentReportRepository implements report.PaymentReportRepository
var _ report.PaymentReportRepository = (*GormPaymentReportRepository)(nil)
