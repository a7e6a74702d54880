package lending

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/audit"
	"github.com/lendledger/backend/internal/domain/identity"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockLoanRepository struct {
	mock.Mock
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*lending.Loan, error) {
	args := m.Called(ctx, id)
	if loan := args.Get(0); loan != nil {
		return loan.(*lending.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoanRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*lending.Loan, error) {
	args := m.Called(ctx, id)
	if loan := args.Get(0); loan != nil {
		return loan.(*lending.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoanRepository) FindAll(ctx context.Context, filter lending.LoanFilter) ([]lending.Loan, error) {
	args := m.Called(ctx, filter)
	if loans := args.Get(0); loans != nil {
		return loans.([]lending.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoanRepository) Save(ctx context.Context, loan *lending.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *mockLoanRepository) SaveWithLock(ctx context.Context, loan *lending.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *mockLoanRepository) CountByStatus(ctx context.Context, status lending.LoanStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLoanRepository) SumPrincipalByStatus(ctx context.Context, status lending.LoanStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockRepaymentRepository struct {
	mock.Mock
}

func (m *mockRepaymentRepository) Save(ctx context.Context, repayment *lending.Repayment) error {
	args := m.Called(ctx, repayment)
	return args.Error(0)
}

func (m *mockRepaymentRepository) FindByLoan(ctx context.Context, loanID uuid.UUID) ([]lending.Repayment, error) {
	args := m.Called(ctx, loanID)
	if repayments := args.Get(0); repayments != nil {
		return repayments.([]lending.Repayment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepaymentRepository) SumByLoan(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockRepaymentRepository) SumByLoans(ctx context.Context, loanIDs []uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, loanIDs)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockRepaymentRepository) SumSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockCreditorRepository struct {
	mock.Mock
}

func (m *mockCreditorRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Creditor, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*identity.Creditor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCreditorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Creditor, error) {
	args := m.Called(ctx, userID)
	if c := args.Get(0); c != nil {
		return c.(*identity.Creditor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCreditorRepository) FindAll(ctx context.Context) ([]identity.Creditor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.Creditor), args.Error(1)
}

func (m *mockCreditorRepository) Save(ctx context.Context, creditor *identity.Creditor) error {
	args := m.Called(ctx, creditor)
	return args.Error(0)
}

type mockDebtorRepository struct {
	mock.Mock
}

func (m *mockDebtorRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Debtor, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*identity.Debtor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDebtorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Debtor, error) {
	args := m.Called(ctx, userID)
	if d := args.Get(0); d != nil {
		return d.(*identity.Debtor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDebtorRepository) FindAll(ctx context.Context) ([]identity.Debtor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.Debtor), args.Error(1)
}

func (m *mockDebtorRepository) Save(ctx context.Context, debtor *identity.Debtor) error {
	args := m.Called(ctx, debtor)
	return args.Error(0)
}

// stubAuditRepository accepts every entry; used to build a real Recorder
type stubAuditRepository struct {
	entries []audit.Entry
}

func (s *stubAuditRepository) Append(_ context.Context, entry *audit.Entry) error {
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *stubAuditRepository) FindByActor(context.Context, uuid.UUID, int) ([]audit.Entry, error) {
	return s.entries, nil
}

func (s *stubAuditRepository) FindRecent(context.Context, int) ([]audit.Entry, error) {
	return s.entries, nil
}
