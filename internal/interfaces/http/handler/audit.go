package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appaudit "github.com/lendledger/backend/internal/application/audit"
)

// AuditHandler exposes the audit trail to administrators
type AuditHandler struct {
	BaseHandler
	logService *appaudit.LogService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(logService *appaudit.LogService) *AuditHandler {
	return &AuditHandler{logService: logService}
}

// ListEntries handles GET /audit
func (h *AuditHandler) ListEntries(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	query := appaudit.LogQuery{}
	if raw := c.Query("actor_user_id"); raw != "" {
		actorUserID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid actor_user_id")
			return
		}
		query.ActorUserID = &actorUserID
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid limit")
			return
		}
		query.Limit = limit
	}

	entries, err := h.logService.List(c.Request.Context(), actor.Role, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
