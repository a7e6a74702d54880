package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	applending "github.com/lendledger/backend/internal/application/lending"
	"github.com/lendledger/backend/internal/domain/identity"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DashboardSummary is the role-scoped dashboard response. Exactly one
// of the role sections is populated.
type DashboardSummary struct {
	Role     string                    `json:"role"`
	Admin    *AdminDashboardSummary    `json:"admin,omitempty"`
	Creditor *CreditorDashboardSummary `json:"creditor,omitempty"`
	Debtor   *DebtorDashboardSummary   `json:"debtor,omitempty"`
}

// AdminDashboardSummary aggregates across the whole ledger
type AdminDashboardSummary struct {
	TotalUsers           int64            `json:"total_users"`
	Creditors            int64            `json:"creditors"`
	Debtors              int64            `json:"debtors"`
	LoansByStatus        map[string]int64 `json:"loans_by_status"`
	OutstandingPrincipal decimal.Decimal  `json:"outstanding_principal"`
	RepaymentsThisMonth  decimal.Decimal  `json:"repayments_this_month"`
}

// CreditorDashboardSummary aggregates the creditor's own portfolio
type CreditorDashboardSummary struct {
	LoansByStatus  map[string]int64 `json:"loans_by_status"`
	TotalLent      decimal.Decimal  `json:"total_lent"`
	TotalCollected decimal.Decimal  `json:"total_collected"`
	ArrearsCount   int              `json:"arrears_count"`
}

// DebtorDashboardSummary aggregates the debtor's own borrowing
type DebtorDashboardSummary struct {
	ActiveLoans     int             `json:"active_loans"`
	NextInstallment decimal.Decimal `json:"next_installment"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	Outstanding     decimal.Decimal `json:"outstanding"`
}

// DashboardService computes role-scoped dashboard aggregates.
// All queries are read-only.
type DashboardService struct {
	users      identity.UserRepository
	creditors  identity.CreditorRepository
	debtors    identity.DebtorRepository
	loans      lending.LoanRepository
	repayments lending.RepaymentRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	users identity.UserRepository,
	creditors identity.CreditorRepository,
	debtors identity.DebtorRepository,
	loans lending.LoanRepository,
	repayments lending.RepaymentRepository,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		users:      users,
		creditors:  creditors,
		debtors:    debtors,
		loans:      loans,
		repayments: repayments,
		logger:     logger,
		now:        time.Now,
	}
}

// Summary returns the dashboard for the actor's role
func (s *DashboardService) Summary(ctx context.Context, actor applending.Actor) (*DashboardSummary, error) {
	summary := &DashboardSummary{Role: actor.Role.String()}

	switch {
	case actor.IsAdmin():
		admin, err := s.adminSummary(ctx)
		if err != nil {
			return nil, err
		}
		summary.Admin = admin
	case actor.IsCreditor():
		creditor, err := s.creditorSummary(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		summary.Creditor = creditor
	default:
		debtor, err := s.debtorSummary(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		summary.Debtor = debtor
	}
	return summary, nil
}

func (s *DashboardService) adminSummary(ctx context.Context) (*AdminDashboardSummary, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	creditorCount, err := s.users.CountByRole(ctx, identity.RoleCreditor)
	if err != nil {
		return nil, err
	}
	debtorCount, err := s.users.CountByRole(ctx, identity.RoleDebtor)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, 4)
	for _, status := range []lending.LoanStatus{
		lending.LoanStatusPending,
		lending.LoanStatusActive,
		lending.LoanStatusRejected,
		lending.LoanStatusClosed,
	} {
		count, err := s.loans.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		byStatus[string(status)] = count
	}

	outstanding, err := s.loans.SumPrincipalByStatus(ctx, lending.LoanStatusActive)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	thisMonth, err := s.repayments.SumSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	return &AdminDashboardSummary{
		TotalUsers:           totalUsers,
		Creditors:            creditorCount,
		Debtors:              debtorCount,
		LoansByStatus:        byStatus,
		OutstandingPrincipal: outstanding.Round(2),
		RepaymentsThisMonth:  thisMonth.Round(2),
	}, nil
}

func (s *DashboardService) creditorSummary(ctx context.Context, userID uuid.UUID) (*CreditorDashboardSummary, error) {
	creditor, err := s.creditors.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := &CreditorDashboardSummary{
		LoansByStatus:  make(map[string]int64, 4),
		TotalLent:      decimal.Zero,
		TotalCollected: decimal.Zero,
	}
	if creditor == nil {
		return summary, nil
	}

	loans, err := s.loans.FindAll(ctx, lending.LoanFilter{CreditorID: &creditor.ID})
	if err != nil {
		return nil, err
	}

	loanIDs := make([]uuid.UUID, 0, len(loans))
	now := s.now()
	for i := range loans {
		loan := &loans[i]
		summary.LoansByStatus[string(loan.Status)]++
		loanIDs = append(loanIDs, loan.ID)
		if loan.IsActive() || loan.IsClosed() {
			summary.TotalLent = summary.TotalLent.Add(loan.Principal)
		}
		if loan.IsActive() && loan.StartDate != nil {
			paid, err := s.repayments.SumByLoan(ctx, loan.ID)
			if err != nil {
				return nil, err
			}
			if lending.AssessArrears(loan, paid, now).InArrears {
				summary.ArrearsCount++
			}
		}
	}

	if len(loanIDs) > 0 {
		collected, err := s.repayments.SumByLoans(ctx, loanIDs)
		if err != nil {
			return nil, err
		}
		summary.TotalCollected = collected.Round(2)
	}
	summary.TotalLent = summary.TotalLent.Round(2)
	return summary, nil
}

func (s *DashboardService) debtorSummary(ctx context.Context, userID uuid.UUID) (*DebtorDashboardSummary, error) {
	debtor, err := s.debtors.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := &DebtorDashboardSummary{
		NextInstallment: decimal.Zero,
		TotalPaid:       decimal.Zero,
		Outstanding:     decimal.Zero,
	}
	if debtor == nil {
		return summary, nil
	}

	loans, err := s.loans.FindAll(ctx, lending.LoanFilter{DebtorID: &debtor.ID})
	if err != nil {
		return nil, err
	}

	loanIDs := make([]uuid.UUID, 0, len(loans))
	for i := range loans {
		loan := &loans[i]
		loanIDs = append(loanIDs, loan.ID)
		if !loan.IsActive() {
			continue
		}
		summary.ActiveLoans++
		summary.NextInstallment = summary.NextInstallment.Add(loan.Installment())

		paid, err := s.repayments.SumByLoan(ctx, loan.ID)
		if err != nil {
			return nil, err
		}
		summary.Outstanding = summary.Outstanding.Add(loan.Outstanding(paid))
	}

	if len(loanIDs) > 0 {
		paid, err := s.repayments.SumByLoans(ctx, loanIDs)
		if err != nil {
			return nil, err
		}
		summary.TotalPaid = paid.Round(2)
	}
	summary.NextInstallment = summary.NextInstallment.Round(2)
	summary.Outstanding = summary.Outstanding.Round(2)
	return summary, nil
}
