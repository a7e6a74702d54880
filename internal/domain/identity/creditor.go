package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/shared"
)

// Creditor is the lender-side profile linked to a user account.
type Creditor struct {
	shared.BaseAggregateRoot
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Organization string    `gorm:"type:varchar(200);not null"`
	Contact      string    `gorm:"type:varchar(320)"`
}

// TableName returns the table name for GORM
func (Creditor) TableName() string {
	return "creditors"
}

// NewCreditor creates a creditor profile for a user
func NewCreditor(userID uuid.UUID, organization, contact string) (*Creditor, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user_id", "cannot be empty")
	}
	organization = strings.TrimSpace(organization)
	if organization == "" {
		return nil, shared.NewValidationError("organization", "cannot be empty")
	}
	if len(organization) > 200 {
		return nil, shared.NewValidationError("organization", "cannot exceed 200 characters")
	}

	return &Creditor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Organization:      organization,
		Contact:           strings.TrimSpace(contact),
	}, nil
}

// UpdateContact replaces the contact details
func (c *Creditor) UpdateContact(organization, contact string) error {
	organization = strings.TrimSpace(organization)
	if organization == "" {
		return shared.NewValidationError("organization", "cannot be empty")
	}
	c.Organization = organization
	c.Contact = strings.TrimSpace(contact)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
