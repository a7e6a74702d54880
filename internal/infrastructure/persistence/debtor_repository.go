package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// GormDebtorRepository implements identity.DebtorRepository using GORM
type GormDebtorRepository struct {
	db *gorm.DB
}

// NewGormDebtorRepository creates a new GormDebtorRepository
func NewGormDebtorRepository(db *gorm.DB) *GormDebtorRepository {
	return &GormDebtorRepository{db: db}
}

// FindByID finds a debtor profile by ID
func (r *GormDebtorRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Debtor, error) {
	var debtor identity.Debtor
	if err := r.db.WithContext(ctx).First(&debtor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &debtor, nil
}

// FindByUserID finds the debtor profile linked to a user account
func (r *GormDebtorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Debtor, error) {
	var debtor identity.Debtor
	if err := r.db.WithContext(ctx).First(&debtor, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &debtor, nil
}

// FindAll returns all debtor profiles ordered by name
func (r *GormDebtorRepository) FindAll(ctx context.Context) ([]identity.Debtor, error) {
	var debtors []identity.Debtor
	if err := r.db.WithContext(ctx).Order("full_name ASC").Find(&debtors).Error; err != nil {
		return nil, err
	}
	return debtors, nil
}

// Save creates or updates a debtor profile
func (r *GormDebtorRepository) Save(ctx context.Context, debtor *identity.Debtor) error {
	return r.db.WithContext(ctx).Save(debtor).Error
}

// Ensure GormDebtorRepository implements identity.DebtorRepository
var _ identity.DebtorRepository = (*GormDebtorRepository)(nil)
