package export

import (
	"context"
	"testing"

	"github.com/lendledger/backend/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRenderer captures the request it was given
type recordingRenderer struct {
	lastRequest *RenderRequest
	output      []byte
	err         error
}

func (r *recordingRenderer) Render(_ context.Context, req *RenderRequest) (*RenderResult, error) {
	r.lastRequest = req
	if r.err != nil {
		return nil, r.err
	}
	return &RenderResult{PDFData: r.output}, nil
}

func (r *recordingRenderer) Close() error { return nil }

func TestPDFExporter(t *testing.T) {
	t.Run("describes its output", func(t *testing.T) {
		exporter := NewPDFExporter(NewStubRenderer())
		assert.Equal(t, "application/pdf", exporter.ContentType())
		assert.Equal(t, "pdf", exporter.Extension())
	})

	t.Run("builds titled HTML with one line per record", func(t *testing.T) {
		renderer := &recordingRenderer{output: []byte("%PDF-1.4")}
		exporter := NewPDFExporter(renderer)

		rec := record("Jordan Doe", "", "88.85")

		data, err := exporter.Render(context.Background(), []report.PaymentRecord{rec})
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4"), data)

		require.NotNil(t, renderer.lastRequest)
		assert.Equal(t, "Payments Report", renderer.lastRequest.Title)
		assert.Contains(t, renderer.lastRequest.HTML, "<h1>Payments Report</h1>")
		assert.Contains(t, renderer.lastRequest.HTML,
			"2026-02-15 | "+rec.LoanID.String()+" | Jordan Doe | 88.85 | bank_transfer")
	})

	t.Run("escapes markup in record fields", func(t *testing.T) {
		renderer := &recordingRenderer{output: []byte("%PDF-1.4")}
		exporter := NewPDFExporter(renderer)

		rec := record("<script>alert(1)</script>", "", "10.00")

		_, err := exporter.Render(context.Background(), []report.PaymentRecord{rec})
		require.NoError(t, err)
		assert.NotContains(t, renderer.lastRequest.HTML, "<script>")
	})

	t.Run("propagates renderer failures", func(t *testing.T) {
		renderer := &recordingRenderer{err: NewRenderError(ErrCodeRenderFailed, "browser crashed", nil)}
		exporter := NewPDFExporter(renderer)

		_, err := exporter.Render(context.Background(), []report.PaymentRecord{record("Jordan", "", "10.00")})

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeRenderFailed, renderErr.Code)
	})
}

func TestStubRenderer(t *testing.T) {
	t.Run("emits deterministic pseudo-PDF bytes", func(t *testing.T) {
		renderer := NewStubRenderer()
		defer renderer.Close()

		result, err := renderer.Render(context.Background(), &RenderRequest{
			HTML:  "<h1>Payments Report</h1>",
			Title: "Payments Report",
		})
		require.NoError(t, err)
		assert.Contains(t, string(result.PDFData), "%PDF-1.4")
		assert.Contains(t, string(result.PDFData), "Payments Report")
	})

	t.Run("rejects empty HTML", func(t *testing.T) {
		renderer := NewStubRenderer()

		_, err := renderer.Render(context.Background(), &RenderRequest{HTML: "   "})

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})
}
