package export

import (
	"context"
	"strings"
	"time"
)

// StubRenderer is a PDFRenderer that emits a minimal single-object PDF
// wrapping the request HTML as plain text. It exists for local
// development and tests where no Chrome instance is available; the
// output is a valid-enough PDF shell, not a faithful rendering.
type StubRenderer struct{}

// NewStubRenderer creates a stub renderer
func NewStubRenderer() *StubRenderer {
	return &StubRenderer{}
}

// Render produces deterministic pseudo-PDF bytes from the request HTML
func (r *StubRenderer) Render(_ context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	start := time.Now()

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	b.WriteString("% stub renderer output\n")
	if req.Title != "" {
		b.WriteString("% title: " + req.Title + "\n")
	}
	b.WriteString(req.HTML)
	b.WriteString("\n%%EOF\n")

	return &RenderResult{
		PDFData:        []byte(b.String()),
		RenderDuration: time.Since(start),
	}, nil
}

// Close is a no-op
func (r *StubRenderer) Close() error {
	return nil
}

// Ensure StubRenderer implements PDFRenderer
var _ PDFRenderer = (*StubRenderer)(nil)
