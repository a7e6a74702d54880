package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/audit"
	"go.uber.org/zap"
)

// Recorder writes audit entries on a best-effort basis. Failures are
// logged and swallowed so that auditing can never fail a business
// operation.
type Recorder struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewRecorder creates a new Recorder
func NewRecorder(repo audit.Repository, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{repo: repo, logger: logger}
}

// Record serializes the payload to JSON and appends an audit entry.
func (r *Recorder) Record(ctx context.Context, actorUserID uuid.UUID, action string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.logger.Warn("audit payload not serializable",
			zap.String("action", action),
			zap.Error(err))
		data = []byte("{}")
	}

	entry, err := audit.NewEntry(actorUserID, action, string(data))
	if err != nil {
		r.logger.Warn("audit entry rejected",
			zap.String("action", action),
			zap.Error(err))
		return
	}

	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Warn("audit entry not persisted",
			zap.String("action", action),
			zap.String("actor", actorUserID.String()),
			zap.Error(err))
	}
}
