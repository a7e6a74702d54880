package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	applending "github.com/lendledger/backend/internal/application/lending"
	appreport "github.com/lendledger/backend/internal/application/report"
	"github.com/lendledger/backend/internal/domain/audit"
	"github.com/lendledger/backend/internal/domain/identity"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/lendledger/backend/internal/domain/report"
	"github.com/lendledger/backend/internal/infrastructure/auth"
	"github.com/lendledger/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asActor injects verified claims the way the JWT middleware would,
// so handler tests don't need to mint tokens.
func asActor(userID uuid.UUID, role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &auth.Claims{UserID: userID.String(), Role: role.String()}
		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTUserIDKey, claims.UserID)
		c.Set(middleware.JWTRoleKey, claims.Role)
		c.Next()
	}
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

// ---- in-memory repository fakes ----

type fakeLoanRepo struct {
	loans map[uuid.UUID]*lending.Loan
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[uuid.UUID]*lending.Loan)}
}

func (r *fakeLoanRepo) FindByID(_ context.Context, id uuid.UUID) (*lending.Loan, error) {
	loan, ok := r.loans[id]
	if !ok {
		return nil, nil
	}
	copied := *loan
	return &copied, nil
}

func (r *fakeLoanRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*lending.Loan, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeLoanRepo) FindAll(_ context.Context, filter lending.LoanFilter) ([]lending.Loan, error) {
	out := make([]lending.Loan, 0)
	for _, loan := range r.loans {
		if filter.Status != nil && loan.Status != *filter.Status {
			continue
		}
		if filter.CreditorID != nil && loan.CreditorID != *filter.CreditorID {
			continue
		}
		if filter.DebtorID != nil && loan.DebtorID != *filter.DebtorID {
			continue
		}
		out = append(out, *loan)
	}
	return out, nil
}

func (r *fakeLoanRepo) Save(_ context.Context, loan *lending.Loan) error {
	copied := *loan
	r.loans[loan.ID] = &copied
	return nil
}

func (r *fakeLoanRepo) SaveWithLock(ctx context.Context, loan *lending.Loan) error {
	return r.Save(ctx, loan)
}

func (r *fakeLoanRepo) CountByStatus(_ context.Context, status lending.LoanStatus) (int64, error) {
	var n int64
	for _, loan := range r.loans {
		if loan.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeLoanRepo) SumPrincipalByStatus(_ context.Context, status lending.LoanStatus) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, loan := range r.loans {
		if loan.Status == status {
			total = total.Add(loan.Principal)
		}
	}
	return total, nil
}

type fakeRepaymentRepo struct {
	repayments []lending.Repayment
}

func (r *fakeRepaymentRepo) Save(_ context.Context, repayment *lending.Repayment) error {
	r.repayments = append(r.repayments, *repayment)
	return nil
}

func (r *fakeRepaymentRepo) FindByLoan(_ context.Context, loanID uuid.UUID) ([]lending.Repayment, error) {
	out := make([]lending.Repayment, 0)
	for _, rp := range r.repayments {
		if rp.LoanID == loanID {
			out = append(out, rp)
		}
	}
	return out, nil
}

func (r *fakeRepaymentRepo) SumByLoan(_ context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, rp := range r.repayments {
		if rp.LoanID == loanID {
			total = total.Add(rp.Amount)
		}
	}
	return total, nil
}

func (r *fakeRepaymentRepo) SumByLoans(ctx context.Context, loanIDs []uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, id := range loanIDs {
		sum, _ := r.SumByLoan(ctx, id)
		total = total.Add(sum)
	}
	return total, nil
}

func (r *fakeRepaymentRepo) SumSince(_ context.Context, since time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, rp := range r.repayments {
		if !rp.PaidOn.Before(since) {
			total = total.Add(rp.Amount)
		}
	}
	return total, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]identity.User, error) {
	out := make([]identity.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *identity.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role identity.Role) (int64, error) {
	var n int64
	for _, user := range r.users {
		if user.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeCreditorRepo struct {
	creditors map[uuid.UUID]*identity.Creditor
}

func newFakeCreditorRepo() *fakeCreditorRepo {
	return &fakeCreditorRepo{creditors: make(map[uuid.UUID]*identity.Creditor)}
}

func (r *fakeCreditorRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Creditor, error) {
	creditor, ok := r.creditors[id]
	if !ok {
		return nil, nil
	}
	copied := *creditor
	return &copied, nil
}

func (r *fakeCreditorRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*identity.Creditor, error) {
	for _, creditor := range r.creditors {
		if creditor.UserID == userID {
			copied := *creditor
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCreditorRepo) FindAll(_ context.Context) ([]identity.Creditor, error) {
	out := make([]identity.Creditor, 0, len(r.creditors))
	for _, creditor := range r.creditors {
		out = append(out, *creditor)
	}
	return out, nil
}

func (r *fakeCreditorRepo) Save(_ context.Context, creditor *identity.Creditor) error {
	copied := *creditor
	r.creditors[creditor.ID] = &copied
	return nil
}

type fakeDebtorRepo struct {
	debtors map[uuid.UUID]*identity.Debtor
}

func newFakeDebtorRepo() *fakeDebtorRepo {
	return &fakeDebtorRepo{debtors: make(map[uuid.UUID]*identity.Debtor)}
}

func (r *fakeDebtorRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Debtor, error) {
	debtor, ok := r.debtors[id]
	if !ok {
		return nil, nil
	}
	copied := *debtor
	return &copied, nil
}

func (r *fakeDebtorRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*identity.Debtor, error) {
	for _, debtor := range r.debtors {
		if debtor.UserID == userID {
			copied := *debtor
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDebtorRepo) FindAll(_ context.Context) ([]identity.Debtor, error) {
	out := make([]identity.Debtor, 0, len(r.debtors))
	for _, debtor := range r.debtors {
		out = append(out, *debtor)
	}
	return out, nil
}

func (r *fakeDebtorRepo) Save(_ context.Context, debtor *identity.Debtor) error {
	copied := *debtor
	r.debtors[debtor.ID] = &copied
	return nil
}

type fakeScope struct {
	loans      *fakeLoanRepo
	repayments *fakeRepaymentRepo
}

func (s *fakeScope) Execute(_ context.Context, fn func(applending.TransactionalRepositories) error) error {
	return fn(s)
}

func (s *fakeScope) Loans() lending.LoanRepository           { return s.loans }
func (s *fakeScope) Repayments() lending.RepaymentRepository { return s.repayments }

type fakeAuditRepo struct {
	entries []audit.Entry
}

func (r *fakeAuditRepo) Append(_ context.Context, entry *audit.Entry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) FindByActor(_ context.Context, actorUserID uuid.UUID, limit int) ([]audit.Entry, error) {
	out := make([]audit.Entry, 0)
	for _, e := range r.entries {
		if e.ActorUserID == actorUserID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) FindRecent(_ context.Context, limit int) ([]audit.Entry, error) {
	if len(r.entries) > limit {
		return r.entries[:limit], nil
	}
	return r.entries, nil
}

type fakePaymentReportRepo struct {
	records    []report.PaymentRecord
	lastFilter report.PaymentReportFilter
}

func (r *fakePaymentReportRepo) FindPayments(_ context.Context, filter report.PaymentReportFilter) ([]report.PaymentRecord, error) {
	r.lastFilter = filter
	return r.records, nil
}

var _ appreport.Exporter = (*stubExporter)(nil)

type stubExporter struct {
	contentType string
	extension   string
	data        []byte
}

func (e *stubExporter) ContentType() string { return e.contentType }
func (e *stubExporter) Extension() string   { return e.extension }
func (e *stubExporter) Render(_ context.Context, _ []report.PaymentRecord) ([]byte, error) {
	return e.data, nil
}
