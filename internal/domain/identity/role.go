package identity

import "github.com/lendledger/backend/internal/domain/shared"

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCreditor Role = "creditor"
	RoleDebtor   Role = "debtor"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCreditor, RoleDebtor:
		return true
	}
	return false
}

// String returns the role as a string
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a raw string to a Role, rejecting unknown values
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", shared.NewValidationError("role", "must be one of admin, creditor, debtor")
	}
	return role, nil
}
