package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Bahjat/site-audit-tool/internal/model"
	"github.com/Bahjat/site-audit-tool/internal/platform/errs"
	"github.com/Bahjat/site-audit-tool/internal/platform/metrics"
)

// blockingProvider waits for the context to end.
type blockingProvider struct{}

func (blockingProvider) Audit(ctx context.Context, _ string) (*model.AuditReport, error) {
	<-ctx.Done()
	return nil, &errs.AppError{Kind: errs.FetchFailed, Message: "Unable to fetch URL", Cause: ctx.Err()}
}

func TestService_Audit_TimeoutOverridesKind(t *testing.T) {
	m := metrics.New()
	svc := NewService(blockingProvider{}, slog.Default(), m)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Audit(ctx, "https://slow.example.com")

	var appErr *errs.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *errs.AppError, got %T", err)
	}
	if appErr.Kind != errs.Timeout {
		t.Errorf("Kind = %v, want %v", appErr.Kind, errs.Timeout)
	}
	if got := testutil.ToFloat64(m.AuditsTotal.WithLabelValues("timeout")); got != 1 {
		t.Errorf("audits_total{timeout} = %v, want 1", got)
	}
}

func TestService_Audit_RecordsOutcome(t *testing.T) {
	m := metrics.New()

	ok := NewService(&mockProvider{result: &model.AuditReport{URL: "https://example.com"}}, slog.Default(), m)
	if _, err := ok.Audit(context.Background(), "https://example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	failing := NewService(&mockProvider{err: &errs.AppError{Kind: errs.FetchFailed, Message: "Unable to fetch URL"}}, slog.Default(), m)
	if _, err := failing.Audit(context.Background(), "https://down.example.com"); err == nil {
		t.Fatal("expected error")
	}

	unknown := NewService(&mockProvider{err: errors.New("boom")}, slog.Default(), m)
	_, _ = unknown.Audit(context.Background(), "https://example.com")

	for outcome, want := range map[string]float64{"success": 1, "fetch_failed": 1, "unknown": 1} {
		if got := testutil.ToFloat64(m.AuditsTotal.WithLabelValues(outcome)); got != want {
			t.Errorf("audits_total{%s} = %v, want %v", outcome, got, want)
		}
	}
}
