package lending

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/lendledger/backend/internal/application/audit"
	"github.com/lendledger/backend/internal/domain/identity"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/lendledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RepaymentService appends ledger entries and closes loans that have
// been fully repaid. The append and the closure happen in the same
// transaction while the loan row is locked, so concurrent postings
// serialize and the total paid is recomputed against committed data.
type RepaymentService struct {
	scope    TransactionScope
	debtors  identity.DebtorRepository
	cache    ScheduleCache
	recorder *appaudit.Recorder
	logger   *zap.Logger
}

// NewRepaymentService creates a new RepaymentService
func NewRepaymentService(
	scope TransactionScope,
	debtors identity.DebtorRepository,
	cache ScheduleCache,
	recorder *appaudit.Recorder,
	logger *zap.Logger,
) *RepaymentService {
	if cache == nil {
		cache = NoOpScheduleCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RepaymentService{
		scope:    scope,
		debtors:  debtors,
		cache:    cache,
		recorder: recorder,
		logger:   logger,
	}
}

// Post records a repayment against an active loan. Admins may post on
// behalf of any debtor; debtors only against their own loans.
func (s *RepaymentService) Post(ctx context.Context, actor Actor, loanID uuid.UUID, input PostRepaymentInput) (*PostRepaymentResult, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("amount", "must be positive")
	}

	var ownDebtor *identity.Debtor
	switch {
	case actor.IsAdmin():
		// may post for anyone
	case actor.IsDebtor():
		var err error
		ownDebtor, err = s.debtors.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if ownDebtor == nil {
			return nil, shared.NewAuthorizationError("No debtor profile for this account")
		}
	default:
		return nil, shared.NewAuthorizationError("Creditors cannot post repayments")
	}

	paidOn := time.Now()
	if input.PaidOn != nil {
		paidOn = *input.PaidOn
	}

	var (
		result PostRepaymentResult
		closed *lending.Loan
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		loan, err := repos.Loans().FindByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return shared.NewNotFoundError("Loan")
		}

		if ownDebtor != nil && loan.DebtorID != ownDebtor.ID {
			return shared.NewAuthorizationError("Not a party to this loan")
		}

		if !loan.CanReceiveRepayment() {
			return shared.NewDomainError("ILLEGAL_STATE_TRANSITION",
				fmt.Sprintf("Cannot post repayment to %s loan", loan.Status))
		}

		repayment, err := lending.NewRepayment(loanID, actor.UserID, input.Amount, input.Method, input.Note, paidOn)
		if err != nil {
			return err
		}
		if err := repos.Repayments().Save(ctx, repayment); err != nil {
			return err
		}

		paid, err := repos.Repayments().SumByLoan(ctx, loanID)
		if err != nil {
			return err
		}

		if loan.ShouldClose(paid) {
			if err := loan.Close(time.Now()); err != nil {
				return err
			}
			if err := repos.Loans().Save(ctx, loan); err != nil {
				return err
			}
			closed = loan
		}

		result = PostRepaymentResult{
			Repayment:  ToRepaymentDTO(repayment),
			TotalPaid:  paid.Round(2),
			LoanClosed: closed != nil,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if closed != nil {
		if err := s.cache.Delete(ctx, ScheduleCacheKey(closed)); err != nil {
			s.logger.Warn("schedule cache invalidation failed", zap.String("loan_id", loanID.String()), zap.Error(err))
		}
	}

	s.logger.Info("repayment posted",
		zap.String("loan_id", loanID.String()),
		zap.String("amount", input.Amount.String()),
		zap.Bool("loan_closed", result.LoanClosed))
	s.recorder.Record(ctx, actor.UserID, "repayment.posted", map[string]any{
		"loan_id":     loanID,
		"amount":      input.Amount,
		"loan_closed": result.LoanClosed,
	})

	return &result, nil
}
