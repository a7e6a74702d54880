package identity

import (
	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/shared"
)

// UserRegisteredEvent is raised when a user profile is first recorded
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Role   Role      `json:"role"`
}

// EventType returns the event type name
func (e *UserRegisteredEvent) EventType() string {
	return "UserRegistered"
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("UserRegistered", "User", u.ID),
		UserID:          u.ID,
		Name:            u.Name,
		Role:            u.Role,
	}
}
