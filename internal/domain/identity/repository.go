package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository provides access to user profiles.
// Find methods return (nil, nil) when no row matches.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Save(ctx context.Context, user *User) error
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
}

// CreditorRepository provides access to creditor profiles
type CreditorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Creditor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Creditor, error)
	FindAll(ctx context.Context) ([]Creditor, error)
	Save(ctx context.Context, creditor *Creditor) error
}

// DebtorRepository provides access to debtor profiles
type DebtorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Debtor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Debtor, error)
	FindAll(ctx context.Context) ([]Debtor, error)
	Save(ctx context.Context, debtor *Debtor) error
}
