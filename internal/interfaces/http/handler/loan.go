package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	applending "github.com/lendledger/backend/internal/application/lending"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/lendledger/backend/internal/domain/shared"
)

// dateLayout is the wire format for date-only fields
const dateLayout = "2006-01-02"

// LoanHandler handles loan lifecycle API endpoints
type LoanHandler struct {
	BaseHandler
	loanService *applending.LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *applending.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateLoanRequest is the payload for opening a loan application.
// Monetary fields travel as strings so amounts are never subjected to
// float rounding on the wire.
type CreateLoanRequest struct {
	CreditorID    *string `json:"creditor_id" binding:"omitempty,uuid"`
	DebtorID      string  `json:"debtor_id" binding:"required,uuid"`
	Principal     string  `json:"principal" binding:"required"`
	AnnualRatePct string  `json:"annual_rate_pct" binding:"required"`
	TermMonths    int     `json:"term_months" binding:"required,gt=0"`
	StartDate     *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
}

// DecideLoanRequest is the payload for approving or rejecting a loan
type DecideLoanRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// CreateLoan handles POST /loans
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), actor, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, loan)
}

// DecideLoan handles POST /loans/:id/decision
func (h *LoanHandler) DecideLoan(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid loan ID")
		return
	}

	var req DecideLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	loan, err := h.loanService.Decide(c.Request.Context(), actor, loanID, *req.Approve)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loan)
}

// GetSchedule handles GET /loans/:id/schedule
func (h *LoanHandler) GetSchedule(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid loan ID")
		return
	}

	rows, err := h.loanService.GetSchedule(c.Request.Context(), actor, loanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// ListLoans handles GET /loans
func (h *LoanHandler) ListLoans(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	var status *lending.LoanStatus
	if raw := c.Query("status"); raw != "" {
		s := lending.LoanStatus(raw)
		status = &s
	}

	loans, err := h.loanService.List(c.Request.Context(), actor, status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loans)
}

// GetLoan handles GET /loans/:id
func (h *LoanHandler) GetLoan(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid loan ID")
		return
	}

	loan, err := h.loanService.Get(c.Request.Context(), actor, loanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loan)
}

func (r *CreateLoanRequest) toInput() (applending.CreateLoanInput, error) {
	input := applending.CreateLoanInput{TermMonths: r.TermMonths}

	debtorID, err := uuid.Parse(r.DebtorID)
	if err != nil {
		return input, shared.NewValidationError("debtor_id", "must be a valid UUID")
	}
	input.DebtorID = debtorID

	if r.CreditorID != nil {
		creditorID, err := uuid.Parse(*r.CreditorID)
		if err != nil {
			return input, shared.NewValidationError("creditor_id", "must be a valid UUID")
		}
		input.CreditorID = &creditorID
	}

	if input.Principal, err = decimal.NewFromString(r.Principal); err != nil {
		return input, shared.NewValidationError("principal", "must be a decimal number")
	}
	if input.AnnualRatePct, err = decimal.NewFromString(r.AnnualRatePct); err != nil {
		return input, shared.NewValidationError("annual_rate_pct", "must be a decimal number")
	}

	if r.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *r.StartDate)
		if err != nil {
			return input, shared.NewValidationError("start_date", "must be a date in YYYY-MM-DD format")
		}
		input.StartDate = &startDate
	}
	return input, nil
}
