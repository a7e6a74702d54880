package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appaudit "github.com/lendledger/backend/internal/application/audit"
	"github.com/lendledger/backend/internal/domain/audit"
	"github.com/lendledger/backend/internal/domain/identity"
)

func newAuditFixture(actorID uuid.UUID, role identity.Role, repo *fakeAuditRepo) *gin.Engine {
	h := NewAuditHandler(appaudit.NewLogService(repo, zap.NewNop()))
	router := gin.New()
	router.Use(asActor(actorID, role))
	router.GET("/audit", h.ListEntries)
	return router
}

func seedEntries(repo *fakeAuditRepo, actorUserID uuid.UUID, n int) {
	for i := 0; i < n; i++ {
		repo.entries = append(repo.entries, audit.Entry{
			ID:          uuid.New(),
			ActorUserID: actorUserID,
			Action:      "loan.created",
			CreatedAt:   time.Now(),
		})
	}
}

func TestAuditHandler_ListEntries(t *testing.T) {
	adminID := uuid.New()

	t.Run("admin lists recent entries", func(t *testing.T) {
		repo := &fakeAuditRepo{}
		seedEntries(repo, adminID, 3)
		router := newAuditFixture(adminID, identity.RoleAdmin, repo)

		w := doJSON(router, http.MethodGet, "/audit", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []audit.Entry `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 3)
	})

	t.Run("filter by actor", func(t *testing.T) {
		repo := &fakeAuditRepo{}
		target := uuid.New()
		seedEntries(repo, target, 2)
		seedEntries(repo, uuid.New(), 4)
		router := newAuditFixture(adminID, identity.RoleAdmin, repo)

		w := doJSON(router, http.MethodGet, "/audit?actor_user_id="+target.String(), "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []audit.Entry `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 2)
	})

	t.Run("invalid actor filter rejected", func(t *testing.T) {
		router := newAuditFixture(adminID, identity.RoleAdmin, &fakeAuditRepo{})
		w := doJSON(router, http.MethodGet, "/audit?actor_user_id=bogus", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		router := newAuditFixture(uuid.New(), identity.RoleCreditor, &fakeAuditRepo{})
		w := doJSON(router, http.MethodGet, "/audit", "")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
