package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/shared"
)

// Debtor is the borrower-side profile linked to a user account.
type Debtor struct {
	shared.BaseAggregateRoot
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	FullName string    `gorm:"type:varchar(200);not null"`
	Contact  string    `gorm:"type:varchar(320)"`
}

// TableName returns the table name for GORM
func (Debtor) TableName() string {
	return "debtors"
}

// NewDebtor creates a debtor profile for a user
func NewDebtor(userID uuid.UUID, fullName, contact string) (*Debtor, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user_id", "cannot be empty")
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, shared.NewValidationError("full_name", "cannot be empty")
	}
	if len(fullName) > 200 {
		return nil, shared.NewValidationError("full_name", "cannot exceed 200 characters")
	}

	return &Debtor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		FullName:          fullName,
		Contact:           strings.TrimSpace(contact),
	}, nil
}

// UpdateContact replaces the contact details
func (d *Debtor) UpdateContact(fullName, contact string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return shared.NewValidationError("full_name", "cannot be empty")
	}
	d.FullName = fullName
	d.Contact = strings.TrimSpace(contact)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}
