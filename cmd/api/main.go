package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"

	"github.com/Bahjat/site-audit-tool/internal/analyzer"
	"github.com/Bahjat/site-audit-tool/internal/audit"
	"github.com/Bahjat/site-audit-tool/internal/pageinsight"
	"github.com/Bahjat/site-audit-tool/internal/platform/config"
	"github.com/Bahjat/site-audit-tool/internal/platform/logger"
	"github.com/Bahjat/site-audit-tool/internal/platform/metrics"
	"github.com/Bahjat/site-audit-tool/internal/platform/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogLevel)

	rules, err := cfg.Rules()
	if err != nil {
		log.Error("failed to load audit rules", "path", cfg.RulesFile, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, rules, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, rules audit.Config, log *slog.Logger) error {
	m := metrics.New()

	engine := pageinsight.NewEngine(pageinsight.NewHTTPClient(rules.FetchTimeout), rules)
	if cfg.RulesFile != "" && cfg.WatchRules {
		go func() {
			if err := config.WatchRules(ctx, log, cfg.RulesFile, engine.SetConfig); err != nil {
				log.Error("rules watcher stopped", "path", cfg.RulesFile, "error", err)
			}
		}()
	}

	svc := analyzer.NewService(engine, log, m)
	transport := analyzer.NewTransport(svc, log)

	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)
	mux.Handle("GET /metrics", m.Handler())

	var h http.Handler = mux
	h = middleware.Metrics(m)(h)
	h = middleware.Logging(log)(h)
	h = middleware.RequestID(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSAllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Accept", "X-Request-ID"}),
	)(h)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("the auditor started", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}
