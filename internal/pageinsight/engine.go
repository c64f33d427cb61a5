package pageinsight

import (
	"context"
	"net/url"
	"sync/atomic"

	"github.com/Bahjat/site-audit-tool/internal/audit"
	"github.com/Bahjat/site-audit-tool/internal/model"
	"github.com/Bahjat/site-audit-tool/internal/platform/errs"
)

const (
	msgInvalidURL    = "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com)."
	msgUnsupported   = "Only http and https URLs are supported."
	msgUnableToFetch = "Unable to fetch URL"
	robotsPath       = "/robots.txt"
)

// Engine fetches a page and its robots.txt, then runs the audit checks.
type Engine struct {
	fetcher Fetcher
	cfg     atomic.Pointer[audit.Config]
}

// NewEngine returns an Engine backed by the given Fetcher and thresholds.
func NewEngine(fetcher Fetcher, cfg audit.Config) *Engine {
	e := &Engine{fetcher: fetcher}
	e.cfg.Store(&cfg)
	return e
}

// SetConfig replaces the thresholds used by subsequent audits.
func (e *Engine) SetConfig(cfg audit.Config) {
	e.cfg.Store(&cfg)
}

// Config returns the thresholds currently in effect.
func (e *Engine) Config() audit.Config {
	return *e.cfg.Load()
}

// Audit validates targetURL, fetches it, probes robots.txt on its origin and
// scores the result. Only a failed primary fetch aborts the audit.
func (e *Engine) Audit(ctx context.Context, targetURL string) (*model.AuditReport, error) {
	cfg := e.Config()

	target, err := parseTarget(targetURL)
	if err != nil {
		return nil, err
	}

	resp, err := e.fetch(ctx, cfg, target.String())
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.FetchFailed,
			Message: msgUnableToFetch,
			Cause:   err,
		}
	}

	doc := ParseDocument(resp.Text)
	robots := e.probeRobots(ctx, cfg, target)

	report := audit.Run(cfg, target.String(), *resp, doc, robots)
	return &report, nil
}

func (e *Engine) fetch(ctx context.Context, cfg audit.Config, rawURL string) (*audit.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()
	return e.fetcher.Fetch(ctx, rawURL)
}

// probeRobots never fails: any fetch error is reported as a zero status.
func (e *Engine) probeRobots(ctx context.Context, cfg audit.Config, target *url.URL) audit.RobotsProbe {
	resp, err := e.fetch(ctx, cfg, robotsURL(target))
	if err != nil {
		return audit.RobotsProbe{}
	}
	return audit.RobotsProbe{StatusCode: resp.StatusCode}
}

// robotsURL keeps scheme and host (with port) and drops everything else.
func robotsURL(target *url.URL) string {
	origin := url.URL{Scheme: target.Scheme, Host: target.Host, Path: robotsPath}
	return origin.String()
}

func parseTarget(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.InvalidInput, Message: msgInvalidURL, Cause: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, &errs.AppError{Kind: errs.InvalidInput, Message: msgInvalidURL}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &errs.AppError{Kind: errs.InvalidInput, Message: msgUnsupported}
	}
	return parsed, nil
}
