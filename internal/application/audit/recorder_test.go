package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	domainaudit "github.com/lendledger/backend/internal/domain/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuditRepository struct {
	mock.Mock
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *domainaudit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditRepository) FindByActor(ctx context.Context, actorUserID uuid.UUID, limit int) ([]domainaudit.Entry, error) {
	args := m.Called(ctx, actorUserID, limit)
	return args.Get(0).([]domainaudit.Entry), args.Error(1)
}

func (m *mockAuditRepository) FindRecent(ctx context.Context, limit int) ([]domainaudit.Entry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domainaudit.Entry), args.Error(1)
}

func TestRecorderRecord(t *testing.T) {
	actor := uuid.New()

	t.Run("appends serialized payload", func(t *testing.T) {
		repo := new(mockAuditRepository)
		var captured *domainaudit.Entry
		repo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Entry")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*domainaudit.Entry)
			}).
			Return(nil)

		recorder := NewRecorder(repo, nil)
		recorder.Record(context.Background(), actor, "loan.created", map[string]string{"loan_id": "abc"})

		repo.AssertExpectations(t)
		require.NotNil(t, captured)
		assert.Equal(t, "loan.created", captured.Action)
		assert.Equal(t, actor, captured.ActorUserID)
		assert.JSONEq(t, `{"loan_id":"abc"}`, captured.Payload)
	})

	t.Run("swallows persistence failures", func(t *testing.T) {
		repo := new(mockAuditRepository)
		repo.On("Append", mock.Anything, mock.Anything).Return(errors.New("db down"))

		recorder := NewRecorder(repo, nil)
		assert.NotPanics(t, func() {
			recorder.Record(context.Background(), actor, "loan.created", nil)
		})
	})

	t.Run("skips entries without an actor", func(t *testing.T) {
		repo := new(mockAuditRepository)

		recorder := NewRecorder(repo, nil)
		recorder.Record(context.Background(), uuid.Nil, "loan.created", nil)

		repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}
