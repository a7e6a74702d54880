package report

import (
	"context"

	"github.com/lendledger/backend/internal/domain/report"
)

// Exporter renders payment records into a downloadable document.
// One implementation per supported format.
type Exporter interface {
	// ContentType returns the MIME type of the rendered document
	ContentType() string
	// Extension returns the file extension without the leading dot
	Extension() string
	// Render produces the document bytes for the given records
	Render(ctx context.Context, records []report.PaymentRecord) ([]byte, error)
}

// ArtifactStore archives rendered export documents. Archiving is best
// effort; callers log and continue on failure.
type ArtifactStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}
