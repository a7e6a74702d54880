package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/audit"
	"gorm.io/gorm"
)

// GormAuditRepository implements audit.Repository using GORM.
// The trail is append-only.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append writes an audit entry
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByActor returns the most recent entries recorded for an actor
func (r *GormAuditRepository) FindByActor(ctx context.Context, actorUserID uuid.UUID, limit int) ([]audit.Entry, error) {
	var entries []audit.Entry
	query := r.db.WithContext(ctx).
		Where("actor_user_id = ?", actorUserID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindRecent returns the most recent entries across all actors
func (r *GormAuditRepository) FindRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	var entries []audit.Entry
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormAuditRepository implements audit.Repository
var _ audit.Repository = (*GormAuditRepository)(nil)
