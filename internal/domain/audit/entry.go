package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/shared"
)

// Entry is an append-only audit record of a business action. The
// payload is the JSON-serialized detail of what happened.
type Entry struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	ActorUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Action      string    `gorm:"type:varchar(100);not null;index"`
	Payload     string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "audit_entries"
}

// NewEntry creates an audit record
func NewEntry(actorUserID uuid.UUID, action, payload string) (*Entry, error) {
	if actorUserID == uuid.Nil {
		return nil, shared.NewValidationError("actor_user_id", "cannot be empty")
	}
	if action == "" {
		return nil, shared.NewValidationError("action", "cannot be empty")
	}
	return &Entry{
		ID:          uuid.New(),
		ActorUserID: actorUserID,
		Action:      action,
		Payload:     payload,
		CreatedAt:   time.Now(),
	}, nil
}
