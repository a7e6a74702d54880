package lending

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepayment(t *testing.T) {
	loanID := uuid.New()
	recordedBy := uuid.New()

	t.Run("creates ledger entry", func(t *testing.T) {
		paidOn := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		r, err := NewRepayment(loanID, recordedBy, decimal.NewFromFloat(88.85), "bank_transfer", "June installment", paidOn)
		require.NoError(t, err)
		assert.Equal(t, loanID, r.LoanID)
		assert.Equal(t, recordedBy, r.RecordedBy)
		assert.Equal(t, "bank_transfer", r.Method)
		assert.Equal(t, paidOn, r.PaidOn)
		assert.NotEqual(t, uuid.Nil, r.ID)
	})

	t.Run("defaults paid_on to now", func(t *testing.T) {
		before := time.Now()
		r, err := NewRepayment(loanID, recordedBy, decimal.NewFromInt(50), "", "", time.Time{})
		require.NoError(t, err)
		assert.False(t, r.PaidOn.Before(before))
	})

	tests := []struct {
		name       string
		loanID     uuid.UUID
		recordedBy uuid.UUID
		amount     decimal.Decimal
		method     string
	}{
		{"empty loan", uuid.Nil, recordedBy, decimal.NewFromInt(10), ""},
		{"empty recorder", loanID, uuid.Nil, decimal.NewFromInt(10), ""},
		{"zero amount", loanID, recordedBy, decimal.Zero, ""},
		{"negative amount", loanID, recordedBy, decimal.NewFromInt(-10), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRepayment(tt.loanID, tt.recordedBy, tt.amount, tt.method, "", time.Time{})
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
		})
	}
}
