// Package convert dispatches an uploaded statement to the right extractor
// and returns the normalized result. It is the one entry point callers use.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/stmtkit/stmtkit/internal/bank"
	"github.com/stmtkit/stmtkit/internal/extract"
	"github.com/stmtkit/stmtkit/internal/loader"
	"github.com/stmtkit/stmtkit/internal/normalize"
	"github.com/stmtkit/stmtkit/internal/statement"
	"github.com/stmtkit/stmtkit/pkg/observability"
)

// Service converts statement uploads. It is stateless apart from its wiring
// and safe for concurrent use.
type Service struct {
	logger   *slog.Logger
	catalog  *bank.Catalog
	registry *extract.Registry
	tracer   trace.Tracer
}

// NewService wires a conversion service.
func NewService(logger *slog.Logger, catalog *bank.Catalog, registry *extract.Registry) *Service {
	return &Service{
		logger:   logger,
		catalog:  catalog,
		registry: registry,
		tracer:   otel.Tracer("stmtkit/convert"),
	}
}

// Banks lists the supported bank profiles.
func (s *Service) Banks() []bank.Profile {
	return s.catalog.List()
}

// Convert runs the full pipeline: load, extract, normalize. Document-level
// failures come back wrapping one of the statement sentinels; row-level
// problems surface as diagnostics on the result instead.
func (s *Service) Convert(ctx context.Context, bankID string, file []byte, password string) (*statement.Result, error) {
	ctx, span := s.tracer.Start(ctx, "Convert",
		trace.WithAttributes(attribute.String("bank.id", bankID)))
	defer span.End()

	observability.ActiveConversions.WithLabelValues(bankID).Inc()
	defer observability.ActiveConversions.WithLabelValues(bankID).Dec()
	start := time.Now()

	res, err := s.convert(ctx, bankID, file, password)

	observability.ConversionDuration.WithLabelValues(bankID).Observe(time.Since(start).Seconds())
	observability.ConversionsTotal.WithLabelValues(bankID, outcomeLabel(err)).Inc()
	if err != nil {
		span.RecordError(err)
		s.logger.Error("conversion failed",
			slog.String("bank", bankID),
			slog.Any("error", err))
		return nil, err
	}

	observability.RowsDropped.WithLabelValues(bankID).Add(float64(res.DroppedRows))
	s.logger.Info("conversion complete",
		slog.String("conversion_id", res.ConversionID),
		slog.String("bank", bankID),
		slog.Int("transactions", len(res.Transactions)),
		slog.Int("dropped_rows", res.DroppedRows),
		slog.Duration("took", time.Since(start)))
	return res, nil
}

func (s *Service) convert(ctx context.Context, bankID string, file []byte, password string) (*statement.Result, error) {
	profile, ok := s.catalog.Get(bankID)
	if !ok {
		return nil, fmt.Errorf("bank %q: %w", bankID, statement.ErrUnknownBank)
	}
	extractor, ok := s.registry.Get(bankID)
	if !ok {
		return nil, fmt.Errorf("bank %q has no extractor: %w", bankID, statement.ErrUnknownBank)
	}
	if len(file) == 0 {
		return nil, fmt.Errorf("empty upload: %w", statement.ErrUnreadableDocument)
	}

	doc, err := loader.Load(file, loader.Options{Password: password})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("document loaded",
		slog.String("bank", bankID),
		slog.String("kind", doc.Kind().String()),
		slog.Int("pages", doc.NumPages()))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := extractor.Extract(doc)
	if err != nil {
		return nil, err
	}

	res := normalize.Normalize(rows, normalize.Config{DateFormats: profile.DateFormats})
	// Balance mismatches are advisory; flagged rows still convert.
	res.Diagnostics = append(res.Diagnostics, normalize.ReconcileBalances(rows)...)
	res.ConversionID = uuid.NewString()
	res.BankID = bankID
	return res, nil
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, statement.ErrUnknownBank):
		return "unknown_bank"
	case errors.Is(err, statement.ErrAuthentication):
		return "authentication"
	case errors.Is(err, statement.ErrFormatMismatch):
		return "format_mismatch"
	case errors.Is(err, statement.ErrUnreadableDocument):
		return "unreadable"
	default:
		return "error"
	}
}
