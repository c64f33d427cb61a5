package pageinsight

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

var errAuditFailed = errors.New("audit failed")

// countingAuditor tracks peak concurrency and fails URLs listed in fail.
type countingAuditor struct {
	inflight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
	fail     map[string]bool
}

func (a *countingAuditor) Audit(_ context.Context, url string) (*model.AuditReport, error) {
	a.calls.Add(1)
	cur := a.inflight.Add(1)
	defer a.inflight.Add(-1)
	for {
		p := a.peak.Load()
		if cur <= p || a.peak.CompareAndSwap(p, cur) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)

	if a.fail[url] {
		return nil, errAuditFailed
	}
	return &model.AuditReport{URL: url}, nil
}

func TestAuditAll_PreservesOrder(t *testing.T) {
	urls := []string{"https://a.example", "https://b.example", "https://c.example", "https://d.example"}
	auditor := &countingAuditor{fail: map[string]bool{"https://c.example": true}}

	results := AuditAll(context.Background(), auditor, urls, 2)

	if len(results) != len(urls) {
		t.Fatalf("got %d results, want %d", len(results), len(urls))
	}
	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("results[%d].URL = %q, want %q", i, r.URL, urls[i])
		}
		if urls[i] == "https://c.example" {
			if !errors.Is(r.Err, errAuditFailed) || r.Report != nil {
				t.Errorf("results[%d] = %+v, want failure", i, r)
			}
			continue
		}
		if r.Err != nil || r.Report == nil || r.Report.URL != urls[i] {
			t.Errorf("results[%d] = %+v, want report for %s", i, r, urls[i])
		}
	}
}

func TestAuditAll_BoundsConcurrency(t *testing.T) {
	urls := make([]string, 12)
	for i := range urls {
		urls[i] = "https://example.com/" + string(rune('a'+i))
	}
	auditor := &countingAuditor{}

	AuditAll(context.Background(), auditor, urls, 3)

	if got := auditor.calls.Load(); got != int32(len(urls)) {
		t.Errorf("calls = %d, want %d", got, len(urls))
	}
	if got := auditor.peak.Load(); got > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", got)
	}
}

func TestAuditAll_Empty(t *testing.T) {
	auditor := &countingAuditor{}
	if got := AuditAll(context.Background(), auditor, nil, 4); len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
	if auditor.calls.Load() != 0 {
		t.Error("auditor called for empty batch")
	}
}

func TestAuditAll_NonPositiveConcurrency(t *testing.T) {
	auditor := &countingAuditor{}
	results := AuditAll(context.Background(), auditor, []string{"https://a.example", "https://b.example"}, 0)
	if len(results) != 2 || results[1].Report == nil {
		t.Errorf("results = %+v, want two reports", results)
	}
	if got := auditor.peak.Load(); got != 1 {
		t.Errorf("peak concurrency = %d, want 1", got)
	}
}
