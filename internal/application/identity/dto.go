package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/identity"
)

// RegisterUserInput provisions a local user record for an identity
// issued by the external gateway. The user id comes from the gateway
// token subject.
type RegisterUserInput struct {
	UserID       uuid.UUID `json:"user_id" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	Email        string    `json:"email" binding:"required,email"`
	Role         string    `json:"role" binding:"required"`
	Organization string    `json:"organization"`
	FullName     string    `json:"full_name"`
	Contact      string    `json:"contact"`
}

// UpdateContactInput updates the actor's own profile contact details
type UpdateContactInput struct {
	Contact      string `json:"contact" binding:"required"`
	Organization string `json:"organization"`
	FullName     string `json:"full_name"`
}

// UserDTO is the API representation of a user
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreditorDTO is the API representation of a creditor profile
type CreditorDTO struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Organization string    `json:"organization"`
	Contact      string    `json:"contact"`
}

// DebtorDTO is the API representation of a debtor profile
type DebtorDTO struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Contact  string    `json:"contact"`
}

// ProfileDTO combines the user with its role profile. Exactly one of
// Creditor and Debtor is set for non-admin users.
type ProfileDTO struct {
	User     UserDTO      `json:"user"`
	Creditor *CreditorDTO `json:"creditor,omitempty"`
	Debtor   *DebtorDTO   `json:"debtor,omitempty"`
}

// ToUserDTO converts a user aggregate to its API representation
func ToUserDTO(user *identity.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
}

// ToCreditorDTO converts a creditor profile to its API representation
func ToCreditorDTO(creditor *identity.Creditor) CreditorDTO {
	return CreditorDTO{
		ID:           creditor.ID,
		UserID:       creditor.UserID,
		Organization: creditor.Organization,
		Contact:      creditor.Contact,
	}
}

// ToDebtorDTO converts a debtor profile to its API representation
func ToDebtorDTO(debtor *identity.Debtor) DebtorDTO {
	return DebtorDTO{
		ID:       debtor.ID,
		UserID:   debtor.UserID,
		FullName: debtor.FullName,
		Contact:  debtor.Contact,
	}
}
