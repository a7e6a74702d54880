package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository provides append and read access to the audit trail.
// Entries are never updated or deleted.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	FindByActor(ctx context.Context, actorUserID uuid.UUID, limit int) ([]Entry, error)
	FindRecent(ctx context.Context, limit int) ([]Entry, error)
}
