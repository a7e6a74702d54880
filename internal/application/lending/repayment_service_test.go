package lending

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/lendledger/backend/internal/application/audit"
	"github.com/lendledger/backend/internal/domain/identity"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type repaymentServiceFixture struct {
	loans      *mockLoanRepository
	repayments *mockRepaymentRepository
	debtors    *mockDebtorRepository
	auditRepo  *stubAuditRepository
	service    *RepaymentService
}

func newRepaymentServiceFixture() *repaymentServiceFixture {
	f := &repaymentServiceFixture{
		loans:      new(mockLoanRepository),
		repayments: new(mockRepaymentRepository),
		debtors:    new(mockDebtorRepository),
		auditRepo:  &stubAuditRepository{},
	}
	scope := NewNoOpTransactionScope(f.loans, f.repayments)
	f.service = NewRepaymentService(scope, f.debtors, nil, appaudit.NewRecorder(f.auditRepo, nil), nil)
	return f
}

func activeLoan(t *testing.T, creditorID, debtorID uuid.UUID) *lending.Loan {
	t.Helper()
	loan := pendingLoan(t, creditorID, debtorID)
	require.NoError(t, loan.Approve(time.Now()))
	return loan
}

func TestRepaymentServicePost(t *testing.T) {
	ctx := context.Background()

	t.Run("debtor posts against own loan", func(t *testing.T) {
		f := newRepaymentServiceFixture()
		actor := Actor{UserID: uuid.New(), Role: identity.RoleDebtor}
		debtor := testDebtor(actor.UserID)
		loan := activeLoan(t, uuid.New(), debtor.ID)

		f.debtors.On("FindByUserID", ctx, actor.UserID).Return(debtor, nil)
		f.loans.On("FindByIDForUpdate", ctx, loan.ID).Return(loan, nil)
		f.repayments.On("Save", ctx, mock.AnythingOfType("*lending.Repayment")).Return(nil)
		f.repayments.On("SumByLoan", ctx, loan.ID).Return(decimal.NewFromFloat(88.85), nil)

		result, err := f.service.Post(ctx, actor, loan.ID, PostRepaymentInput{
			Amount: decimal.NewFromFloat(88.85),
			Method: "bank_transfer",
		})
		require.NoError(t, err)
		assert.False(t, result.LoanClosed)
		assert.Equal(t, "88.85", result.TotalPaid.StringFixed(2))
		assert.Equal(t, lending.LoanStatusActive, loan.Status)
		require.Len(t, f.auditRepo.entries, 1)
		assert.Equal(t, "repayment.posted", f.auditRepo.entries[0].Action)
	})

	t.Run("final repayment closes the loan", func(t *testing.T) {
		f := newRepaymentServiceFixture()
		actor := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}
		loan := activeLoan(t, uuid.New(), uuid.New())

		f.loans.On("FindByIDForUpdate", ctx, loan.ID).Return(loan, nil)
		f.repayments.On("Save", ctx, mock.Anything).Return(nil)
		// total due is 1066.20
		f.repayments.On("SumByLoan", ctx, loan.ID).Return(decimal.NewFromFloat(1066.20), nil)
		f.loans.On("Save", ctx, loan).Return(nil)

		result, err := f.service.Post(ctx, actor, loan.ID, PostRepaymentInput{
			Amount: decimal.NewFromFloat(88.85),
		})
		require.NoError(t, err)
		assert.True(t, result.LoanClosed)
		assert.Equal(t, lending.LoanStatusClosed, loan.Status)
	})

	t.Run("creditor cannot post", func(t *testing.T) {
		f := newRepaymentServiceFixture()
		actor := Actor{UserID: uuid.New(), Role: identity.RoleCreditor}

		_, err := f.service.Post(ctx, actor, uuid.New(), PostRepaymentInput{
			Amount: decimal.NewFromInt(10),
		})
		assertDomainCode(t, err, "FORBIDDEN")
	})

	t.Run("debtor cannot post against another debtors loan", func(t *testing.T) {
		f := newRepaymentServiceFixture()
		actor := Actor{UserID: uuid.New(), Role: identity.RoleDebtor}
		debtor := testDebtor(actor.UserID)
		loan := activeLoan(t, uuid.New(), uuid.New())

		f.debtors.On("FindByUserID", ctx, actor.UserID).Return(debtor, nil)
		f.loans.On("FindByIDForUpdate", ctx, loan.ID).Return(loan, nil)

		_, err := f.service.Post(ctx, actor, loan.ID, PostRepaymentInput{
			Amount: decimal.NewFromInt(10),
		})
		assertDomainCode(t, err, "FORBIDDEN")
	})

	t.Run("pending loan rejects repayments", func(t *testing.T) {
		f := newRepaymentServiceFixture()
		actor := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}
		loan := pendingLoan(t, uuid.New(), uuid.New())

		f.loans.On("FindByIDForUpdate", ctx, loan.ID).Return(loan, nil)

		_, err := f.service.Post(ctx, actor, loan.ID, PostRepaymentInput{
			Amount: decimal.NewFromInt(10),
		})
		assertDomainCode(t, err, "ILLEGAL_STATE_TRANSITION")
	})

	t.Run("overpaying sequence closes the loan exactly once", func(t *testing.T) {
		f := newRepaymentServiceFixture()
		actor := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}
		loan := activeLoan(t, uuid.New(), uuid.New())

		f.loans.On("FindByIDForUpdate", ctx, loan.ID).Return(loan, nil)
		f.repayments.On("Save", ctx, mock.Anything).Return(nil)
		// total due is 1066.20; the running sum crosses it on the third post
		f.repayments.On("SumByLoan", ctx, loan.ID).Return(decimal.NewFromInt(500), nil).Once()
		f.repayments.On("SumByLoan", ctx, loan.ID).Return(decimal.NewFromInt(1000), nil).Once()
		f.repayments.On("SumByLoan", ctx, loan.ID).Return(decimal.NewFromInt(1100), nil).Once()
		f.loans.On("Save", ctx, loan).Return(nil)

		for i, amount := range []int64{500, 500, 100} {
			result, err := f.service.Post(ctx, actor, loan.ID, PostRepaymentInput{
				Amount: decimal.NewFromInt(amount),
			})
			require.NoError(t, err)
			assert.Equal(t, i == 2, result.LoanClosed, "post %d", i+1)
		}

		assert.Equal(t, lending.LoanStatusClosed, loan.Status)
		require.NotNil(t, loan.ClosedAt)
		closedAt := *loan.ClosedAt

		// the loan is settled; further posts bounce off the closed state
		_, err := f.service.Post(ctx, actor, loan.ID, PostRepaymentInput{
			Amount: decimal.NewFromInt(10),
		})
		assertDomainCode(t, err, "ILLEGAL_STATE_TRANSITION")
		assert.Equal(t, closedAt, *loan.ClosedAt)

		// only the closing transition persisted the aggregate
		f.loans.AssertNumberOfCalls(t, "Save", 1)
		f.repayments.AssertNumberOfCalls(t, "Save", 3)
	})

	t.Run("non positive amount", func(t *testing.T) {
		f := newRepaymentServiceFixture()
		actor := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}

		_, err := f.service.Post(ctx, actor, uuid.New(), PostRepaymentInput{
			Amount: decimal.Zero,
		})
		assertDomainCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("unknown loan", func(t *testing.T) {
		f := newRepaymentServiceFixture()
		actor := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}
		loanID := uuid.New()

		f.loans.On("FindByIDForUpdate", ctx, loanID).Return(nil, nil)

		_, err := f.service.Post(ctx, actor, loanID, PostRepaymentInput{
			Amount: decimal.NewFromInt(10),
		})
		assertDomainCode(t, err, "NOT_FOUND")
	})
}
