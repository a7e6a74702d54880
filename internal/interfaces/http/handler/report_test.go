package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appaudit "github.com/lendledger/backend/internal/application/audit"
	applending "github.com/lendledger/backend/internal/application/lending"
	appreport "github.com/lendledger/backend/internal/application/report"
	"github.com/lendledger/backend/internal/domain/identity"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/lendledger/backend/internal/domain/report"
)

type reportFixture struct {
	router   *gin.Engine
	loans    *fakeLoanRepo
	payments *fakePaymentReportRepo
	debtors  *fakeDebtorRepo
}

func newReportFixture(t *testing.T, actorID uuid.UUID, role identity.Role) *reportFixture {
	t.Helper()

	loans := newFakeLoanRepo()
	repayments := &fakeRepaymentRepo{}
	users := newFakeUserRepo()
	creditors := newFakeCreditorRepo()
	debtors := newFakeDebtorRepo()
	payments := &fakePaymentReportRepo{}
	recorder := appaudit.NewRecorder(&fakeAuditRepo{}, zap.NewNop())

	exporters := map[string]appreport.Exporter{
		"csv": &stubExporter{contentType: "text/csv", extension: "csv", data: []byte("paid_on,repayment_id\n")},
	}

	arrears := applending.NewArrearsService(loans, repayments, creditors, zap.NewNop())
	paymentSvc := appreport.NewPaymentReportService(payments, exporters, nil, recorder, zap.NewNop())
	dashboard := appreport.NewDashboardService(users, creditors, debtors, loans, repayments, zap.NewNop())
	h := NewReportHandler(arrears, paymentSvc, dashboard)

	router := gin.New()
	router.Use(asActor(actorID, role))
	router.GET("/reports/arrears", h.GetArrears)
	router.GET("/reports/payments", h.ListPayments)
	router.GET("/reports/payments/export", h.ExportPayments)
	router.GET("/reports/dashboard", h.GetDashboard)

	return &reportFixture{router: router, loans: loans, payments: payments, debtors: debtors}
}

func TestReportHandler_ExportPayments(t *testing.T) {
	adminID := uuid.New()

	t.Run("csv download", func(t *testing.T) {
		f := newReportFixture(t, adminID, identity.RoleAdmin)
		w := doJSON(f.router, http.MethodGet, "/reports/payments/export?format=csv", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="payments_`)
		assert.Contains(t, w.Header().Get("Content-Disposition"), `.csv"`)
		assert.Equal(t, "paid_on,repayment_id\n", w.Body.String())
	})

	t.Run("format defaults to csv", func(t *testing.T) {
		f := newReportFixture(t, adminID, identity.RoleAdmin)
		w := doJSON(f.router, http.MethodGet, "/reports/payments/export", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		f := newReportFixture(t, adminID, identity.RoleAdmin)
		w := doJSON(f.router, http.MethodGet, "/reports/payments/export?format=xlsx", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "UNSUPPORTED_FORMAT")
	})

	t.Run("debtor forbidden", func(t *testing.T) {
		f := newReportFixture(t, uuid.New(), identity.RoleDebtor)
		w := doJSON(f.router, http.MethodGet, "/reports/payments/export", "")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestReportHandler_ListPayments(t *testing.T) {
	adminID := uuid.New()

	t.Run("no date range is capped", func(t *testing.T) {
		f := newReportFixture(t, adminID, identity.RoleAdmin)
		w := doJSON(f.router, http.MethodGet, "/reports/payments", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 500, f.payments.lastFilter.Limit)
	})

	t.Run("date range is uncapped and inclusive", func(t *testing.T) {
		f := newReportFixture(t, adminID, identity.RoleAdmin)
		w := doJSON(f.router, http.MethodGet, "/reports/payments?from=2026-01-01&to=2026-06-30", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, f.payments.lastFilter.Limit)
		require.NotNil(t, f.payments.lastFilter.To)
		assert.Equal(t, 30, f.payments.lastFilter.To.Day())
		assert.Equal(t, 23, f.payments.lastFilter.To.Hour())
	})

	t.Run("bad date rejected", func(t *testing.T) {
		f := newReportFixture(t, adminID, identity.RoleAdmin)
		w := doJSON(f.router, http.MethodGet, "/reports/payments?from=yesterday", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "from")
	})

	t.Run("records pass through", func(t *testing.T) {
		f := newReportFixture(t, adminID, identity.RoleAdmin)
		f.payments.records = []report.PaymentRecord{{
			RepaymentID: uuid.New(),
			LoanID:      uuid.New(),
			DebtorID:    uuid.New(),
			DebtorName:  "Jordan Doe",
			Amount:      decimal.RequireFromString("88.85"),
			Method:      "bank_transfer",
			PaidOn:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		}}

		w := doJSON(f.router, http.MethodGet, "/reports/payments", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []report.PaymentRecord `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Jordan Doe", resp.Data[0].DebtorName)
	})
}

func TestReportHandler_GetArrears(t *testing.T) {
	adminID := uuid.New()

	t.Run("overdue loan is reported", func(t *testing.T) {
		f := newReportFixture(t, adminID, identity.RoleAdmin)

		debtor, err := identity.NewDebtor(uuid.New(), "Jordan Doe", "jordan@example.com")
		require.NoError(t, err)
		require.NoError(t, f.debtors.Save(nil, debtor))

		start := time.Now().AddDate(0, -6, 0)
		loan, err := lending.NewLoan(uuid.New(), debtor.ID,
			decimal.NewFromInt(1000), decimal.NewFromInt(12), 12, &start)
		require.NoError(t, err)
		require.NoError(t, loan.Approve(start))
		require.NoError(t, f.loans.Save(nil, loan))

		w := doJSON(f.router, http.MethodGet, "/reports/arrears", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []applending.ArrearsRowDTO `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, loan.ID, resp.Data[0].LoanID)
		assert.True(t, resp.Data[0].Deficit.IsPositive())
	})

	t.Run("debtor forbidden", func(t *testing.T) {
		f := newReportFixture(t, uuid.New(), identity.RoleDebtor)
		w := doJSON(f.router, http.MethodGet, "/reports/arrears", "")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestReportHandler_GetDashboard(t *testing.T) {
	t.Run("admin section", func(t *testing.T) {
		f := newReportFixture(t, uuid.New(), identity.RoleAdmin)
		w := doJSON(f.router, http.MethodGet, "/reports/dashboard", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data appreport.DashboardSummary `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "admin", resp.Data.Role)
		assert.NotNil(t, resp.Data.Admin)
		assert.Nil(t, resp.Data.Creditor)
		assert.Nil(t, resp.Data.Debtor)
	})

	t.Run("debtor section", func(t *testing.T) {
		debtorUserID := uuid.New()
		f := newReportFixture(t, debtorUserID, identity.RoleDebtor)

		debtor, err := identity.NewDebtor(debtorUserID, "Jordan Doe", "jordan@example.com")
		require.NoError(t, err)
		require.NoError(t, f.debtors.Save(nil, debtor))

		w := doJSON(f.router, http.MethodGet, "/reports/dashboard", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data appreport.DashboardSummary `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "debtor", resp.Data.Role)
		assert.NotNil(t, resp.Data.Debtor)
	})
}
