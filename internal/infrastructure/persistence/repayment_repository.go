package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormRepaymentRepository implements lending.RepaymentRepository using
// GORM. The ledger is append-only; there are no update or delete paths.
type GormRepaymentRepository struct {
	db *gorm.DB
}

// NewGormRepaymentRepository creates a new GormRepaymentRepository
func NewGormRepaymentRepository(db *gorm.DB) *GormRepaymentRepository {
	return &GormRepaymentRepository{db: db}
}

// Save appends a repayment to the ledger
func (r *GormRepaymentRepository) Save(ctx context.Context, repayment *lending.Repayment) error {
	return r.db.WithContext(ctx).Create(repayment).Error
}

// FindByLoan returns all repayments for a loan in payment order
func (r *GormRepaymentRepository) FindByLoan(ctx context.Context, loanID uuid.UUID) ([]lending.Repayment, error) {
	var repayments []lending.Repayment
	if err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("paid_on ASC, created_at ASC").
		Find(&repayments).Error; err != nil {
		return nil, err
	}
	return repayments, nil
}

// SumByLoan totals all repayments posted against a loan
func (r *GormRepaymentRepository) SumByLoan(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&lending.Repayment{}).
		Where("loan_id = ?", loanID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumByLoans totals repayments across a set of loans
func (r *GormRepaymentRepository) SumByLoans(ctx context.Context, loanIDs []uuid.UUID) (decimal.Decimal, error) {
	if len(loanIDs) == 0 {
		return decimal.Zero, nil
	}
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&lending.Repayment{}).
		Where("loan_id IN ?", loanIDs).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumSince totals repayments paid on or after the given time
func (r *GormRepaymentRepository) SumSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&lending.Repayment{}).
		Where("paid_on >= ?", since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Ensure GormRepaymentRepository implements lending.RepaymentRepository
var _ lending.RepaymentRepository = (*GormRepaymentRepository)(nil)
