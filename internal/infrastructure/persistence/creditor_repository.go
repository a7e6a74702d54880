package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// GormCreditorRepository implements identity.CreditorRepository using GORM
type GormCreditorRepository struct {
	db *gorm.DB
}

// NewGormCreditorRepository creates a new GormCreditorRepository
func NewGormCreditorRepository(db *gorm.DB) *GormCreditorRepository {
	return &GormCreditorRepository{db: db}
}

// FindByID finds a creditor profile by ID
func (r *GormCreditorRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Creditor, error) {
	var creditor identity.Creditor
	if err := r.db.WithContext(ctx).First(&creditor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creditor, nil
}

// FindByUserID finds the creditor profile linked to a user account
func (r *GormCreditorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Creditor, error) {
	var creditor identity.Creditor
	if err := r.db.WithContext(ctx).First(&creditor, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creditor, nil
}

// FindAll returns all creditor profiles ordered by organization name
func (r *GormCreditorRepository) FindAll(ctx context.Context) ([]identity.Creditor, error) {
	var creditors []identity.Creditor
	if err := r.db.WithContext(ctx).Order("organization ASC").Find(&creditors).Error; err != nil {
		return nil, err
	}
	return creditors, nil
}

// Save creates or updates a creditor profile
func (r *GormCreditorRepository) Save(ctx context.Context, creditor *identity.Creditor) error {
	return r.db.WithContext(ctx).Save(creditor).Error
}

// Ensure GormCreditorRepository implements identity.CreditorRepository
var _ identity.CreditorRepository = (*GormCreditorRepository)(nil)
