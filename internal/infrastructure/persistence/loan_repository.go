package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/lendledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLoanRepository implements lending.LoanRepository using GORM
type GormLoanRepository struct {
	db *gorm.DB
}

// NewGormLoanRepository creates a new GormLoanRepository
func NewGormLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

// FindByID finds a loan by ID
func (r *GormLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*lending.Loan, error) {
	var loan lending.Loan
	if err := r.db.WithContext(ctx).First(&loan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &loan, nil
}

// FindByIDForUpdate loads the loan under a FOR UPDATE row lock. Must be
// called inside a transaction; the lock is released on commit or rollback.
func (r *GormLoanRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*lending.Loan, error) {
	var loan lending.Loan
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&loan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &loan, nil
}

// FindAll finds loans matching the filter, newest first
func (r *GormLoanRepository) FindAll(ctx context.Context, filter lending.LoanFilter) ([]lending.Loan, error) {
	var loans []lending.Loan
	query := r.db.WithContext(ctx)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CreditorID != nil {
		query = query.Where("creditor_id = ?", *filter.CreditorID)
	}
	if filter.DebtorID != nil {
		query = query.Where("debtor_id = ?", *filter.DebtorID)
	}

	if err := query.Order("created_at DESC").Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

// Save creates or updates a loan
func (r *GormLoanRepository) Save(ctx context.Context, loan *lending.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormLoanRepository) SaveWithLock(ctx context.Context, loan *lending.Loan) error {
	result := r.db.WithContext(ctx).
		Model(loan).
		Where("id = ? AND version = ?", loan.ID, loan.Version-1).
		Updates(loan)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CountByStatus counts loans in the given lifecycle state
func (r *GormLoanRepository) CountByStatus(ctx context.Context, status lending.LoanStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&lending.Loan{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumPrincipalByStatus totals the principal of loans in the given state
func (r *GormLoanRepository) SumPrincipalByStatus(ctx context.Context, status lending.LoanStatus) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&lending.Loan{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(principal), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Ensure GormLoanRepository implements lending.LoanRepository
var _ lending.LoanRepository = (*GormLoanRepository)(nil)
