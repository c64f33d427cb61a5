package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bahjat/site-audit-tool/internal/pageinsight"
	"github.com/Bahjat/site-audit-tool/internal/platform/config"
)

func main() {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	newFetcher := func(timeout time.Duration) pageinsight.Fetcher {
		return pageinsight.NewHTTPClient(timeout)
	}
	if err := newRootCmd(env, newFetcher).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
