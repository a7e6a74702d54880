package export

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	appreport "github.com/lendledger/backend/internal/application/report"
	"github.com/lendledger/backend/internal/domain/report"
)

// reportTitle is the document heading of the payments PDF
const reportTitle = "Payments Report"

var paymentsTemplate = template.Must(template.New("payments").Parse(`<h1>{{.Title}}</h1>
{{range .Lines}}<div class="row">{{.}}</div>
{{end}}`))

// PDFExporter renders payment records through a PDFRenderer. Each
// record becomes one pipe-separated line under the report title.
type PDFExporter struct {
	renderer PDFRenderer
}

// NewPDFExporter creates a PDF exporter backed by the given renderer
func NewPDFExporter(renderer PDFRenderer) *PDFExporter {
	return &PDFExporter{renderer: renderer}
}

// ContentType returns the MIME type of the rendered output
func (e *PDFExporter) ContentType() string {
	return "application/pdf"
}

// Extension returns the file extension without a dot
func (e *PDFExporter) Extension() string {
	return "pdf"
}

// Render builds the report HTML and hands it to the renderer
func (e *PDFExporter) Render(ctx context.Context, records []report.PaymentRecord) ([]byte, error) {
	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, strings.Join([]string{
			record.PaidOn.Format(paidOnLayout),
			record.LoanID.String(),
			record.DebtorName,
			record.Amount.StringFixed(2),
			record.Method,
		}, " | "))
	}

	var html strings.Builder
	if err := paymentsTemplate.Execute(&html, struct {
		Title string
		Lines []string
	}{Title: reportTitle, Lines: lines}); err != nil {
		return nil, fmt.Errorf("failed to build report HTML: %w", err)
	}

	result, err := e.renderer.Render(ctx, &RenderRequest{
		HTML:  html.String(),
		Title: reportTitle,
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// Ensure PDFExporter implements Exporter
var _ appreport.Exporter = (*PDFExporter)(nil)
