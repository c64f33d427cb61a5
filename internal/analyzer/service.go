package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Bahjat/site-audit-tool/internal/model"
	"github.com/Bahjat/site-audit-tool/internal/platform/errs"
	"github.com/Bahjat/site-audit-tool/internal/platform/metrics"
	"github.com/Bahjat/site-audit-tool/internal/platform/requestid"
)

// Service runs an AuditProvider, logging and recording each outcome.
type Service struct {
	provider AuditProvider
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewService creates a Service backed by the given provider.
func NewService(provider AuditProvider, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{provider: provider, logger: logger, metrics: m}
}

// Audit delegates to the provider and logs the outcome.
func (s *Service) Audit(ctx context.Context, targetURL string) (*model.AuditReport, error) {
	logger := s.logger.With("url", targetURL, "request_id", requestid.FromContext(ctx))
	start := time.Now()

	report, err := s.provider.Audit(ctx, targetURL)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = &errs.AppError{
				Kind:    errs.Timeout,
				Message: "Audit timed out. The target URL may be slow to respond.",
				Cause:   err,
			}
		}

		kind := errs.Unknown
		var appErr *errs.AppError
		if errors.As(err, &appErr) {
			kind = appErr.Kind
		}
		s.metrics.ObserveAudit(kind.String(), time.Since(start), nil)
		logger.Error("audit failed", "error", err, "kind", kind.String())
		return nil, err
	}

	s.metrics.ObserveAudit("success", time.Since(start), report)
	logger.Info("audit complete",
		"status_code", report.StatusCode,
		"security", report.Scores.Security,
		"seo", report.Scores.SEO,
		"performance", report.Scores.Performance,
		"accessibility", report.Scores.Accessibility,
		"issues", len(report.Summary.Issues),
		"size_bytes", report.Page.SizeBytes,
	)
	return report, nil
}
