package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	applending "github.com/lendledger/backend/internal/application/lending"
	appreport "github.com/lendledger/backend/internal/application/report"
	"github.com/lendledger/backend/internal/domain/shared"
)

// ReportHandler handles arrears, payment report and dashboard endpoints
type ReportHandler struct {
	BaseHandler
	arrearsService   *applending.ArrearsService
	paymentService   *appreport.PaymentReportService
	dashboardService *appreport.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(
	arrearsService *applending.ArrearsService,
	paymentService *appreport.PaymentReportService,
	dashboardService *appreport.DashboardService,
) *ReportHandler {
	return &ReportHandler{
		arrearsService:   arrearsService,
		paymentService:   paymentService,
		dashboardService: dashboardService,
	}
}

// GetArrears handles GET /reports/arrears
func (h *ReportHandler) GetArrears(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	rows, err := h.arrearsService.Arrears(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// ListPayments handles GET /reports/payments
func (h *ReportHandler) ListPayments(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	query, err := paymentQueryFromRequest(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	records, err := h.paymentService.ListPayments(c.Request.Context(), actor, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// ExportPayments handles GET /reports/payments/export
func (h *ReportHandler) ExportPayments(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	query, err := paymentQueryFromRequest(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	result, err := h.paymentService.Export(c.Request.Context(), actor, format, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(200, result.ContentType, result.Data)
}

// GetDashboard handles GET /reports/dashboard
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// paymentQueryFromRequest parses the report filter query parameters.
// Dates use the YYYY-MM-DD wire format; "to" is inclusive of the whole
// day.
func paymentQueryFromRequest(c *gin.Context) (appreport.PaymentQuery, error) {
	var query appreport.PaymentQuery

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return query, shared.NewValidationError("from", "must be a date in YYYY-MM-DD format")
		}
		query.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return query, shared.NewValidationError("to", "must be a date in YYYY-MM-DD format")
		}
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		query.To = &endOfDay
	}
	if raw := c.Query("creditor_id"); raw != "" {
		creditorID, err := uuid.Parse(raw)
		if err != nil {
			return query, shared.NewValidationError("creditor_id", "must be a valid UUID")
		}
		query.CreditorID = &creditorID
	}
	return query, nil
}
