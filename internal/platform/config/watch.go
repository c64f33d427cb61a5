package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Bahjat/site-audit-tool/internal/audit"
)

// WatchRules monitors path and calls onChange with the reloaded thresholds
// each time the file changes. It runs until ctx is cancelled.
//
// The parent directory is watched rather than the file, so saves that write
// a temp file and rename it over path are seen. A reload that fails to parse
// or validate is logged and skipped; the previous thresholds stay active.
func WatchRules(ctx context.Context, logger *slog.Logger, path string, onChange func(audit.Config)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	logger.Info("rules: watching for changes", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			// Rename and Remove leave nothing to read; the Create that
			// follows an atomic save triggers the reload.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := LoadRules(target)
			if err != nil {
				logger.Error("rules: reload failed, keeping previous thresholds", "path", target, "error", err)
				continue
			}

			logger.Info("rules: reloaded", "path", target)
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("rules: watcher error", "error", err)
		}
	}
}
