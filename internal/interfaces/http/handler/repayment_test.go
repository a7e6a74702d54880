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
	"github.com/lendledger/backend/internal/domain/identity"
	"github.com/lendledger/backend/internal/domain/lending"
)

type repaymentFixture struct {
	router  *gin.Engine
	loans   *fakeLoanRepo
	debtors *fakeDebtorRepo
	loanID  uuid.UUID
}

func newRepaymentFixture(t *testing.T, actorID uuid.UUID, role identity.Role) *repaymentFixture {
	t.Helper()

	loans := newFakeLoanRepo()
	repayments := &fakeRepaymentRepo{}
	debtors := newFakeDebtorRepo()
	scope := &fakeScope{loans: loans, repayments: repayments}
	recorder := appaudit.NewRecorder(&fakeAuditRepo{}, zap.NewNop())

	debtor, err := identity.NewDebtor(actorID, "Jordan Doe", "jordan@example.com")
	require.NoError(t, err)
	require.NoError(t, debtors.Save(nil, debtor))

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	loan, err := lending.NewLoan(uuid.New(), debtor.ID,
		decimal.NewFromInt(1000), decimal.NewFromInt(12), 12, &start)
	require.NoError(t, err)
	require.NoError(t, loan.Approve(start))
	require.NoError(t, loans.Save(nil, loan))

	service := applending.NewRepaymentService(scope, debtors, nil, recorder, zap.NewNop())
	h := NewRepaymentHandler(service)

	router := gin.New()
	router.Use(asActor(actorID, role))
	router.POST("/loans/:id/repayments", h.PostRepayment)

	return &repaymentFixture{router: router, loans: loans, debtors: debtors, loanID: loan.ID}
}

func TestRepaymentHandler_PostRepayment(t *testing.T) {
	debtorUserID := uuid.New()

	t.Run("debtor posts repayment", func(t *testing.T) {
		f := newRepaymentFixture(t, debtorUserID, identity.RoleDebtor)
		body := `{"amount": "88.85", "method": "bank_transfer", "paid_on": "2026-02-01"}`
		w := doJSON(f.router, http.MethodPost, "/loans/"+f.loanID.String()+"/repayments", body)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Data applending.PostRepaymentResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "88.85", resp.Data.TotalPaid.String())
		assert.False(t, resp.Data.LoanClosed)
	})

	t.Run("final repayment closes the loan", func(t *testing.T) {
		f := newRepaymentFixture(t, debtorUserID, identity.RoleDebtor)
		body := `{"amount": "1066.20", "method": "bank_transfer"}`
		w := doJSON(f.router, http.MethodPost, "/loans/"+f.loanID.String()+"/repayments", body)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Data applending.PostRepaymentResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Data.LoanClosed)

		stored, err := f.loans.FindByID(nil, f.loanID)
		require.NoError(t, err)
		assert.Equal(t, lending.LoanStatusClosed, stored.Status)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		f := newRepaymentFixture(t, debtorUserID, identity.RoleDebtor)
		body := `{"amount": "-5"}`
		w := doJSON(f.router, http.MethodPost, "/loans/"+f.loanID.String()+"/repayments", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "amount")
	})

	t.Run("unknown loan 404", func(t *testing.T) {
		f := newRepaymentFixture(t, debtorUserID, identity.RoleDebtor)
		body := `{"amount": "88.85"}`
		w := doJSON(f.router, http.MethodPost, "/loans/"+uuid.NewString()+"/repayments", body)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("creditor cannot post", func(t *testing.T) {
		f := newRepaymentFixture(t, uuid.New(), identity.RoleCreditor)
		body := `{"amount": "88.85"}`
		w := doJSON(f.router, http.MethodPost, "/loans/"+f.loanID.String()+"/repayments", body)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
