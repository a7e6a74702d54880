package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lendledger/backend/internal/domain/audit"
	"github.com/lendledger/backend/internal/domain/identity"
	"github.com/lendledger/backend/internal/domain/shared"
)

// defaultLogLimit caps audit listings when the caller gives no limit.
const defaultLogLimit = 100

// LogQuery filters an audit trail listing
type LogQuery struct {
	ActorUserID *uuid.UUID
	Limit       int
}

// LogService reads the audit trail. Admin only.
type LogService struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewLogService creates a new LogService
func NewLogService(repo audit.Repository, logger *zap.Logger) *LogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogService{repo: repo, logger: logger}
}

// List returns recent audit entries, optionally scoped to one actor.
func (s *LogService) List(ctx context.Context, role identity.Role, query LogQuery) ([]audit.Entry, error) {
	if role != identity.RoleAdmin {
		return nil, shared.NewAuthorizationError("Only admins can read the audit trail")
	}

	limit := query.Limit
	if limit <= 0 || limit > defaultLogLimit {
		limit = defaultLogLimit
	}

	if query.ActorUserID != nil {
		return s.repo.FindByActor(ctx, *query.ActorUserID, limit)
	}
	return s.repo.FindRecent(ctx, limit)
}
