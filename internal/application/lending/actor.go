package lending

import (
	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/identity"
)

// Actor is the verified principal a request acts on behalf of. It is
// produced at the HTTP boundary from the token the identity gateway
// issued; services trust it.
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == identity.RoleAdmin
}

// IsCreditor reports whether the actor holds the creditor role
func (a Actor) IsCreditor() bool {
	return a.Role == identity.RoleCreditor
}

// IsDebtor reports whether the actor holds the debtor role
func (a Actor) IsDebtor() bool {
	return a.Role == identity.RoleDebtor
}
