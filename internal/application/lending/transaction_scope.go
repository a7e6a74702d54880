package lending

import (
	"context"

	"github.com/lendledger/backend/internal/domain/lending"
)

// TransactionScope provides transactional access to the lending
// repositories. Repository operations executed inside the scope commit
// or roll back as one unit, which is what lets a repayment append and
// the resulting loan closure happen atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the lending
// repositories bound to the current transaction.
type TransactionalRepositories interface {
	Loans() lending.LoanRepository
	Repayments() lending.RepaymentRepository
}

// NoOpTransactionScope runs the function against fixed repositories
// without a real transaction. Used in tests.
type NoOpTransactionScope struct {
	loans      lending.LoanRepository
	repayments lending.RepaymentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(loans lending.LoanRepository, repayments lending.RepaymentRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{loans: loans, repayments: repayments}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Loans returns the loan repository
func (s *NoOpTransactionScope) Loans() lending.LoanRepository {
	return s.loans
}

// Repayments returns the repayment repository
func (s *NoOpTransactionScope) Repayments() lending.RepaymentRepository {
	return s.repayments
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
