package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/lendledger/backend/internal/application/audit"
	applending "github.com/lendledger/backend/internal/application/lending"
	"github.com/lendledger/backend/internal/domain/report"
	"github.com/lendledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// maxUnboundedRows caps report queries that carry no date range.
const maxUnboundedRows = 500

// PaymentQuery is the request filter for payment listings and exports
type PaymentQuery struct {
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	CreditorID *uuid.UUID `form:"creditor_id"`
}

// ExportResult is a rendered export document ready for download
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// PaymentReportService lists and exports the payment ledger. Reports
// are read-only; exports are additionally archived to object storage
// on a best-effort basis.
type PaymentReportService struct {
	payments  report.PaymentReportRepository
	exporters map[string]Exporter
	artifacts ArtifactStore
	recorder  *appaudit.Recorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewPaymentReportService creates a new PaymentReportService. The
// exporters map is keyed by lowercase format name; artifacts may be nil
// to disable archiving.
func NewPaymentReportService(
	payments report.PaymentReportRepository,
	exporters map[string]Exporter,
	artifacts ArtifactStore,
	recorder *appaudit.Recorder,
	logger *zap.Logger,
) *PaymentReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentReportService{
		payments:  payments,
		exporters: exporters,
		artifacts: artifacts,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// ListPayments returns payment records as JSON-ready rows.
// Admins and creditors only.
func (s *PaymentReportService) ListPayments(ctx context.Context, actor applending.Actor, query PaymentQuery) ([]report.PaymentRecord, error) {
	records, err := s.find(ctx, actor, query)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Export renders the payment report in the requested format. Formats
// other than csv and pdf are rejected with an UNSUPPORTED_FORMAT error.
func (s *PaymentReportService) Export(ctx context.Context, actor applending.Actor, format string, query PaymentQuery) (*ExportResult, error) {
	exporter, ok := s.exporters[strings.ToLower(format)]
	if !ok {
		return nil, shared.NewUnsupportedFormatError(format)
	}

	records, err := s.find(ctx, actor, query)
	if err != nil {
		return nil, err
	}

	data, err := exporter.Render(ctx, records)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		FileName:    fmt.Sprintf("payments_%s.%s", s.now().Format("20060102_150405"), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Data:        data,
	}

	s.archive(ctx, result)
	s.logger.Info("payments exported",
		zap.String("format", strings.ToLower(format)),
		zap.Int("rows", len(records)),
		zap.String("file", result.FileName))
	s.recorder.Record(ctx, actor.UserID, "payments.exported", map[string]any{
		"format": strings.ToLower(format),
		"rows":   len(records),
	})

	return result, nil
}

func (s *PaymentReportService) find(ctx context.Context, actor applending.Actor, query PaymentQuery) ([]report.PaymentRecord, error) {
	if !actor.IsAdmin() && !actor.IsCreditor() {
		return nil, shared.NewAuthorizationError("Only admins and creditors can view payment reports")
	}

	filter := report.PaymentReportFilter{
		From:       query.From,
		To:         query.To,
		CreditorID: query.CreditorID,
	}
	if filter.From == nil && filter.To == nil {
		filter.Limit = maxUnboundedRows
	}
	return s.payments.FindPayments(ctx, filter)
}

// archive is best effort: a storage failure never fails the export.
func (s *PaymentReportService) archive(ctx context.Context, result *ExportResult) {
	if s.artifacts == nil {
		return
	}
	key := "exports/" + result.FileName
	if err := s.artifacts.Upload(ctx, key, result.Data, result.ContentType); err != nil {
		s.logger.Warn("export archiving failed", zap.String("key", key), zap.Error(err))
	}
}
