package pageinsight

import (
	"context"
	"sync"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

// Auditor audits a single URL.
type Auditor interface {
	Audit(ctx context.Context, targetURL string) (*model.AuditReport, error)
}

// BatchResult is the outcome for one URL of a batch.
type BatchResult struct {
	URL    string
	Report *model.AuditReport
	Err    error
}

// AuditAll audits each URL independently using a pool of worker goroutines
// sized by concurrency. Results are returned in the order of urls.
func AuditAll(ctx context.Context, auditor Auditor, urls []string, concurrency int) []BatchResult {
	results := make([]BatchResult, len(urls))
	if len(urls) == 0 {
		return results
	}

	jobs := make(chan int, len(urls))
	numWorkers := min(len(urls), max(concurrency, 1))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for i := range jobs {
				report, err := auditor.Audit(ctx, urls[i])
				results[i] = BatchResult{URL: urls[i], Report: report, Err: err}
			}
		})
	}

	for i := range urls {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
