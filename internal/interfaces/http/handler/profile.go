package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/lendledger/backend/internal/application/identity"
)

// ProfileHandler handles user and profile API endpoints
type ProfileHandler struct {
	BaseHandler
	profileService *appidentity.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *appidentity.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Register handles POST /users. Admin only; the service enforces it.
func (h *ProfileHandler) Register(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	var req appidentity.RegisterUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	profile, err := h.profileService.Register(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, profile)
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Profile(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateContact handles PUT /profile/contact
func (h *ProfileHandler) UpdateContact(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	var req appidentity.UpdateContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	profile, err := h.profileService.UpdateContact(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// ListCreditors handles GET /creditors
func (h *ProfileHandler) ListCreditors(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	creditors, err := h.profileService.ListCreditors(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, creditors)
}

// ListDebtors handles GET /debtors
func (h *ProfileHandler) ListDebtors(c *gin.Context) {
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	debtors, err := h.profileService.ListDebtors(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debtors)
}
