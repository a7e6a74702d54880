package lending

import (
	"context"
	"time"

	"github.com/lendledger/backend/internal/domain/identity"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/lendledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ArrearsService detects loans that have fallen behind their
// amortization schedule. It is strictly read-only.
type ArrearsService struct {
	loans      lending.LoanRepository
	repayments lending.RepaymentRepository
	creditors  identity.CreditorRepository
	logger     *zap.Logger
	// now is swappable for tests
	now func() time.Time
}

// NewArrearsService creates a new ArrearsService
func NewArrearsService(
	loans lending.LoanRepository,
	repayments lending.RepaymentRepository,
	creditors identity.CreditorRepository,
	logger *zap.Logger,
) *ArrearsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArrearsService{
		loans:      loans,
		repayments: repayments,
		creditors:  creditors,
		logger:     logger,
		now:        time.Now,
	}
}

// Arrears returns active loans whose repayments trail the schedule.
// Admins see all loans; creditors only their own. Debtors may not run
// arrears reports.
func (s *ArrearsService) Arrears(ctx context.Context, actor Actor) ([]ArrearsRowDTO, error) {
	status := lending.LoanStatusActive
	filter := lending.LoanFilter{Status: &status}

	switch {
	case actor.IsAdmin():
		// unscoped
	case actor.IsCreditor():
		own, err := s.creditors.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if own == nil {
			return []ArrearsRowDTO{}, nil
		}
		filter.CreditorID = &own.ID
	default:
		return nil, shared.NewAuthorizationError("Only admins and creditors can view arrears")
	}

	loans, err := s.loans.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rows := make([]ArrearsRowDTO, 0)
	for i := range loans {
		loan := &loans[i]
		if loan.StartDate == nil {
			continue
		}

		paid, err := s.repayments.SumByLoan(ctx, loan.ID)
		if err != nil {
			return nil, err
		}

		assessment := lending.AssessArrears(loan, paid, now)
		if !assessment.InArrears {
			continue
		}
		rows = append(rows, ArrearsRowDTO{
			LoanID:         loan.ID,
			CreditorID:     loan.CreditorID,
			DebtorID:       loan.DebtorID,
			MonthsElapsed:  assessment.MonthsElapsed,
			ExpectedToDate: assessment.ExpectedToDate.Round(2),
			Paid:           assessment.Paid.Round(2),
			Deficit:        assessment.Deficit.Round(2),
		})
	}
	return rows, nil
}
