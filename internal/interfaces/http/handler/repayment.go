package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	applending "github.com/lendledger/backend/internal/application/lending"
	"github.com/lendledger/backend/internal/domain/shared"
)

// RepaymentHandler handles the repayment ledger API endpoints
type RepaymentHandler struct {
	BaseHandler
	repaymentService *applending.RepaymentService
}

// NewRepaymentHandler creates a new RepaymentHandler
func NewRepaymentHandler(repaymentService *applending.RepaymentService) *RepaymentHandler {
	return &RepaymentHandler{repaymentService: repaymentService}
}

// PostRepaymentRequest is the payload for recording a repayment
type PostRepaymentRequest struct {
	Amount string  `json:"amount" binding:"required"`
	Method string  `json:"method" binding:"omitempty,max=50"`
	Note   string  `json:"note" binding:"omitempty,max=500"`
	PaidOn *string `json:"paid_on" binding:"omitempty,datetime=2006-01-02"`
}

// PostRepayment handles POST /loans/:id/repayments
func (h *RepaymentHandler) PostRepayment(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid loan ID")
		return
	}

	var req PostRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.HandleError(c, shared.NewValidationError("amount", "must be a decimal number"))
		return
	}

	input := applending.PostRepaymentInput{
		Amount: amount,
		Method: req.Method,
		Note:   req.Note,
	}
	if req.PaidOn != nil {
		paidOn, err := time.Parse(dateLayout, *req.PaidOn)
		if err != nil {
			h.HandleError(c, shared.NewValidationError("paid_on", "must be a date in YYYY-MM-DD format"))
			return
		}
		input.PaidOn = &paidOn
	}

	result, err := h.repaymentService.Post(c.Request.Context(), actor, loanID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
