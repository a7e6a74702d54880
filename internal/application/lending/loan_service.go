package lending

import (
	"context"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/lendledger/backend/internal/application/audit"
	"github.com/lendledger/backend/internal/domain/identity"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/lendledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LoanService handles the loan lifecycle: application, decision,
// listing and schedule computation.
type LoanService struct {
	loans      lending.LoanRepository
	repayments lending.RepaymentRepository
	creditors  identity.CreditorRepository
	debtors    identity.DebtorRepository
	scope      TransactionScope
	cache      ScheduleCache
	recorder   *appaudit.Recorder
	logger     *zap.Logger
}

// NewLoanService creates a new LoanService
func NewLoanService(
	loans lending.LoanRepository,
	repayments lending.RepaymentRepository,
	creditors identity.CreditorRepository,
	debtors identity.DebtorRepository,
	scope TransactionScope,
	cache ScheduleCache,
	recorder *appaudit.Recorder,
	logger *zap.Logger,
) *LoanService {
	if cache == nil {
		cache = NoOpScheduleCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanService{
		loans:      loans,
		repayments: repayments,
		creditors:  creditors,
		debtors:    debtors,
		scope:      scope,
		cache:      cache,
		recorder:   recorder,
		logger:     logger,
	}
}

// CreateLoan opens a pending loan application. Admins may create on
// behalf of any creditor; creditors only for themselves.
func (s *LoanService) CreateLoan(ctx context.Context, actor Actor, input CreateLoanInput) (*LoanDTO, error) {
	creditorID, err := s.resolveCreditorID(ctx, actor, input.CreditorID)
	if err != nil {
		return nil, err
	}

	creditor, err := s.creditors.FindByID(ctx, creditorID)
	if err != nil {
		return nil, err
	}
	if creditor == nil {
		return nil, shared.NewNotFoundError("Creditor")
	}

	debtor, err := s.debtors.FindByID(ctx, input.DebtorID)
	if err != nil {
		return nil, err
	}
	if debtor == nil {
		return nil, shared.NewNotFoundError("Debtor")
	}

	loan, err := lending.NewLoan(creditorID, input.DebtorID, input.Principal, input.AnnualRatePct, input.TermMonths, input.StartDate)
	if err != nil {
		return nil, err
	}

	if err := s.loans.Save(ctx, loan); err != nil {
		return nil, err
	}

	s.logger.Info("loan created",
		zap.String("loan_id", loan.ID.String()),
		zap.String("creditor_id", creditorID.String()),
		zap.String("debtor_id", input.DebtorID.String()))
	s.recorder.Record(ctx, actor.UserID, "loan.created", map[string]any{
		"loan_id":     loan.ID,
		"creditor_id": creditorID,
		"debtor_id":   input.DebtorID,
		"principal":   input.Principal,
		"term_months": input.TermMonths,
	})

	dto := ToLoanDTO(loan)
	return &dto, nil
}

// resolveCreditorID determines which creditor the loan belongs to and
// enforces that creditors only act for themselves.
func (s *LoanService) resolveCreditorID(ctx context.Context, actor Actor, requested *uuid.UUID) (uuid.UUID, error) {
	switch {
	case actor.IsAdmin():
		if requested == nil || *requested == uuid.Nil {
			return uuid.Nil, shared.NewValidationError("creditor_id", "is required")
		}
		return *requested, nil
	case actor.IsCreditor():
		own, err := s.creditors.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return uuid.Nil, err
		}
		if own == nil {
			return uuid.Nil, shared.NewAuthorizationError("No creditor profile for this account")
		}
		if requested != nil && *requested != uuid.Nil && *requested != own.ID {
			return uuid.Nil, shared.NewAuthorizationError("Creditors can only create loans for themselves")
		}
		return own.ID, nil
	default:
		return uuid.Nil, shared.NewAuthorizationError("Only admins and creditors can create loans")
	}
}

// Decide approves or rejects a pending loan. The loan row is locked
// for the duration of the decision so concurrent decisions serialize.
func (s *LoanService) Decide(ctx context.Context, actor Actor, loanID uuid.UUID, approve bool) (*LoanDTO, error) {
	ownCreditor, err := s.actorCreditor(ctx, actor)
	if err != nil {
		return nil, err
	}

	var (
		dto     LoanDTO
		decided *lending.Loan
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		loan, err := repos.Loans().FindByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return shared.NewNotFoundError("Loan")
		}

		if !actor.IsAdmin() {
			if ownCreditor == nil || loan.CreditorID != ownCreditor.ID {
				return shared.NewAuthorizationError("Only the lending creditor or an admin can decide this loan")
			}
		}

		now := time.Now()
		if approve {
			err = loan.Approve(now)
		} else {
			err = loan.Reject(now)
		}
		if err != nil {
			return err
		}

		if err := repos.Loans().Save(ctx, loan); err != nil {
			return err
		}
		dto = ToLoanDTO(loan)
		decided = loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, ScheduleCacheKey(decided)); err != nil {
		s.logger.Warn("schedule cache invalidation failed", zap.String("loan_id", loanID.String()), zap.Error(err))
	}

	action := "loan.rejected"
	if approve {
		action = "loan.approved"
	}
	s.logger.Info("loan decided",
		zap.String("loan_id", loanID.String()),
		zap.Bool("approved", approve))
	s.recorder.Record(ctx, actor.UserID, action, map[string]any{"loan_id": loanID})

	return &dto, nil
}

// GetSchedule returns the amortization schedule for a loan the actor
// may see. Computed schedules are cached per loan terms.
func (s *LoanService) GetSchedule(ctx context.Context, actor Actor, loanID uuid.UUID) ([]lending.ScheduleRow, error) {
	loan, err := s.authorizedLoan(ctx, actor, loanID)
	if err != nil {
		return nil, err
	}

	key := ScheduleCacheKey(loan)
	if rows, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("schedule cache read failed", zap.String("loan_id", loanID.String()), zap.Error(err))
	} else if rows != nil {
		return rows, nil
	}

	rows := lending.Schedule(loan.Principal, loan.AnnualRatePct, loan.TermMonths)
	if err := s.cache.Set(ctx, key, rows); err != nil {
		s.logger.Warn("schedule cache write failed", zap.String("loan_id", loanID.String()), zap.Error(err))
	}
	return rows, nil
}

// List returns loans visible to the actor, optionally filtered by status
func (s *LoanService) List(ctx context.Context, actor Actor, status *lending.LoanStatus) ([]LoanDTO, error) {
	if status != nil && !status.IsValid() {
		return nil, shared.NewValidationError("status", "must be one of pending, active, rejected, closed")
	}

	filter := lending.LoanFilter{Status: status}
	switch {
	case actor.IsAdmin():
		// unscoped
	case actor.IsCreditor():
		own, err := s.actorCreditor(ctx, actor)
		if err != nil {
			return nil, err
		}
		if own == nil {
			return []LoanDTO{}, nil
		}
		filter.CreditorID = &own.ID
	case actor.IsDebtor():
		own, err := s.actorDebtor(ctx, actor)
		if err != nil {
			return nil, err
		}
		if own == nil {
			return []LoanDTO{}, nil
		}
		filter.DebtorID = &own.ID
	default:
		return nil, shared.NewAuthorizationError("Unknown role")
	}

	loans, err := s.loans.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		dtos = append(dtos, ToLoanDTO(&loans[i]))
	}
	return dtos, nil
}

// Get returns a single loan with its repayment progress
func (s *LoanService) Get(ctx context.Context, actor Actor, loanID uuid.UUID) (*LoanDetailDTO, error) {
	loan, err := s.authorizedLoan(ctx, actor, loanID)
	if err != nil {
		return nil, err
	}

	repayments, err := s.repayments.FindByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	paid, err := s.repayments.SumByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	detail := &LoanDetailDTO{
		LoanDTO:     ToLoanDTO(loan),
		TotalDue:    loan.TotalDue().Round(2),
		TotalPaid:   paid.Round(2),
		Outstanding: loan.Outstanding(paid).Round(2),
		Repayments:  make([]RepaymentDTO, 0, len(repayments)),
	}
	for i := range repayments {
		detail.Repayments = append(detail.Repayments, ToRepaymentDTO(&repayments[i]))
	}
	return detail, nil
}

// authorizedLoan loads a loan and verifies the actor may read it:
// admins always, creditors and debtors only their own.
func (s *LoanService) authorizedLoan(ctx context.Context, actor Actor, loanID uuid.UUID) (*lending.Loan, error) {
	loan, err := s.loans.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, shared.NewNotFoundError("Loan")
	}

	if actor.IsAdmin() {
		return loan, nil
	}
	if actor.IsCreditor() {
		own, err := s.actorCreditor(ctx, actor)
		if err != nil {
			return nil, err
		}
		if own != nil && loan.CreditorID == own.ID {
			return loan, nil
		}
	}
	if actor.IsDebtor() {
		own, err := s.actorDebtor(ctx, actor)
		if err != nil {
			return nil, err
		}
		if own != nil && loan.DebtorID == own.ID {
			return loan, nil
		}
	}
	return nil, shared.NewAuthorizationError("Not a party to this loan")
}

func (s *LoanService) actorCreditor(ctx context.Context, actor Actor) (*identity.Creditor, error) {
	if !actor.IsCreditor() {
		return nil, nil
	}
	return s.creditors.FindByUserID(ctx, actor.UserID)
}

func (s *LoanService) actorDebtor(ctx context.Context, actor Actor) (*identity.Debtor, error) {
	if !actor.IsDebtor() {
		return nil, nil
	}
	return s.debtors.FindByUserID(ctx, actor.UserID)
}
