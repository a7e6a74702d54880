package persistence

import (
	"context"

	applending "github.com/lendledger/backend/internal/application/lending"
	"github.com/lendledger/backend/internal/domain/lending"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos applending.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to the lending
// repositories bound to the current transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Loans returns the loan repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Loans() lending.LoanRepository {
	return NewGormLoanRepository(r.tx)
}

// Repayments returns the repayment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Repayments() lending.RepaymentRepository {
	return NewGormRepaymentRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ applending.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ applending.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
