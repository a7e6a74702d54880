package identity

import (
	"strings"
	"time"

	"github.com/lendledger/backend/internal/domain/shared"
)

// User represents an authenticated principal known to the ledger.
// Credential storage and token issuance live in the external identity
// gateway; the ledger only keeps the profile and role needed for
// authorization decisions.
type User struct {
	shared.BaseAggregateRoot
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(320);uniqueIndex"`
	Role  Role   `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with a validated role
func NewUser(name, email string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("name", "cannot exceed 200 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("role", "must be one of admin, creditor, debtor")
	}

	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Role:              role,
	}
	u.AddDomainEvent(NewUserRegisteredEvent(u))
	return u, nil
}

// Rename changes the display name
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "cannot be empty")
	}
	u.Name = name
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
