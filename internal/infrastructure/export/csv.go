package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	appreport "github.com/lendledger/backend/internal/application/report"
	"github.com/lendledger/backend/internal/domain/report"
)

// paidOnLayout is the date format used in exported files
const paidOnLayout = "2006-01-02"

// csvHeader is the fixed column order of the payments CSV
var csvHeader = []string{
	"paid_on", "repayment_id", "loan_id", "debtor_id",
	"debtor_name", "amount", "method", "note",
}

// CSVExporter renders payment records as RFC 4180 CSV. Fields
// containing commas, quotes or newlines are quoted, with embedded
// quotes doubled.
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ContentType returns the MIME type of the rendered output
func (e *CSVExporter) ContentType() string {
	return "text/csv"
}

// Extension returns the file extension without a dot
func (e *CSVExporter) Extension() string {
	return "csv"
}

// Render writes the header row followed by one row per record
func (e *CSVExporter) Render(_ context.Context, records []report.PaymentRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.PaidOn.Format(paidOnLayout),
			record.RepaymentID.String(),
			record.LoanID.String(),
			record.DebtorID.String(),
			record.DebtorName,
			record.Amount.StringFixed(2),
			record.Method,
			record.Note,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Ensure CSVExporter implements Exporter
var _ appreport.Exporter = (*CSVExporter)(nil)
