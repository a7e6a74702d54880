package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lendledger/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(name, note string, amount string) report.PaymentRecord {
	return report.PaymentRecord{
		RepaymentID: uuid.New(),
		LoanID:      uuid.New(),
		DebtorID:    uuid.New(),
		DebtorName:  name,
		Amount:      decimal.RequireFromString(amount),
		Method:      "bank_transfer",
		Note:        note,
		PaidOn:      time.Date(2026, 2, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestCSVExporter(t *testing.T) {
	exporter := NewCSVExporter()

	t.Run("describes its output", func(t *testing.T) {
		assert.Equal(t, "text/csv", exporter.ContentType())
		assert.Equal(t, "csv", exporter.Extension())
	})

	t.Run("writes only the header for an empty report", func(t *testing.T) {
		data, err := exporter.Render(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "paid_on,repayment_id,loan_id,debtor_id,debtor_name,amount,method,note\n", string(data))
	})

	t.Run("writes one row per record with cents formatting", func(t *testing.T) {
		rec := record("Jordan Doe", "first installment", "88.85")

		data, err := exporter.Render(context.Background(), []report.PaymentRecord{rec})
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "2026-02-15,"+rec.RepaymentID.String()+","+rec.LoanID.String()+","+rec.DebtorID.String()+",Jordan Doe,88.85,bank_transfer,first installment", lines[1])
	})

	t.Run("quotes fields and doubles embedded quotes", func(t *testing.T) {
		rec := record(`Acme "Holdings", Ltd`, "note,with comma", "100.00")

		data, err := exporter.Render(context.Background(), []report.PaymentRecord{rec})
		require.NoError(t, err)

		assert.Contains(t, string(data), `"Acme ""Holdings"", Ltd"`)
		assert.Contains(t, string(data), `"note,with comma"`)
	})
}
