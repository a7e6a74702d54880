package lending

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanFilter narrows loan queries. Nil fields are ignored.
type LoanFilter struct {
	Status     *LoanStatus
	CreditorID *uuid.UUID
	DebtorID   *uuid.UUID
}

// LoanRepository provides access to loan aggregates.
// Find methods return (nil, nil) when no row matches.
type LoanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Loan, error)
	// FindByIDForUpdate loads the loan under a row lock. Must be
	// called inside a transaction; the lock is held until commit.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Loan, error)
	FindAll(ctx context.Context, filter LoanFilter) ([]Loan, error)
	Save(ctx context.Context, loan *Loan) error
	// SaveWithLock persists the aggregate only if its stored version
	// matches the version the aggregate was loaded at.
	SaveWithLock(ctx context.Context, loan *Loan) error
	CountByStatus(ctx context.Context, status LoanStatus) (int64, error)
	SumPrincipalByStatus(ctx context.Context, status LoanStatus) (decimal.Decimal, error)
}

// RepaymentRepository provides access to the append-only repayment ledger
type RepaymentRepository interface {
	Save(ctx context.Context, repayment *Repayment) error
	FindByLoan(ctx context.Context, loanID uuid.UUID) ([]Repayment, error)
	SumByLoan(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error)
	SumByLoans(ctx context.Context, loanIDs []uuid.UUID) (decimal.Decimal, error)
	SumSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
}
