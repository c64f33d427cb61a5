package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Bahjat/site-audit-tool/internal/audit"
	"github.com/Bahjat/site-audit-tool/internal/pageinsight"
	"github.com/Bahjat/site-audit-tool/internal/platform/config"
)

const homePage = `<html><head><title>Home</title></head><body><h1>Hi</h1></body></html>`

// pageFetcher serves homePage for every URL except robots.txt.
type pageFetcher struct {
	mu      sync.Mutex
	timeout time.Duration
	calls   int
}

func (f *pageFetcher) Fetch(_ context.Context, url string) (*audit.Response, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if strings.HasSuffix(url, "/robots.txt") {
		return &audit.Response{StatusCode: http.StatusNotFound, Headers: audit.Headers{}}, nil
	}
	return &audit.Response{
		StatusCode: http.StatusOK,
		Headers:    audit.NewHeaders(http.Header{"Strict-Transport-Security": {"max-age=63072000"}}),
		Body:       []byte(homePage),
		Text:       homePage,
	}, nil
}

func execute(t *testing.T, f *pageFetcher, args ...string) (string, string, error) {
	t.Helper()
	env := config.Config{LogLevel: "ERROR", AuditConcurrency: 4}
	cmd := newRootCmd(env, func(timeout time.Duration) pageinsight.Fetcher {
		f.timeout = timeout
		return f
	})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRoot_RequiresURL(t *testing.T) {
	f := &pageFetcher{}
	if _, _, err := execute(t, f); err == nil {
		t.Fatal("expected error without arguments")
	}
	if f.calls != 0 {
		t.Errorf("fetcher called %d times", f.calls)
	}
}

func TestRoot_TextOutput(t *testing.T) {
	out, _, err := execute(t, &pageFetcher{}, "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"https://example.com\n",
		"status 200",
		`title "Home"`,
		"passes:\n",
		"+ Uses HTTPS",
		"issues:\n",
		"- SEO: robots.txt not found",
		"recommendations:\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRoot_JSONOutput(t *testing.T) {
	out, _, err := execute(t, &pageFetcher{}, "--json", "https://a.example.com", "https://b.example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var results []struct {
		URL    string          `json:"url"`
		Report json.RawMessage `json:"report"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(results) != 2 || results[0].URL != "https://a.example.com" || results[1].URL != "https://b.example.com" {
		t.Fatalf("results = %+v", results)
	}
	for _, r := range results {
		if r.Error != "" || len(r.Report) == 0 {
			t.Errorf("result %s: error %q, report %s", r.URL, r.Error, r.Report)
		}
	}
}

func TestRoot_FailedAuditExitsNonZero(t *testing.T) {
	f := &pageFetcher{}
	out, stderr, err := execute(t, f, "--log-level", "ERROR", "ftp://example.com", "https://example.com")

	if !errors.Is(err, errAuditsFailed) {
		t.Fatalf("err = %v, want errAuditsFailed", err)
	}
	if !strings.Contains(out, "ftp://example.com\n  error:") {
		t.Errorf("output missing failure line:\n%s", out)
	}
	if !strings.Contains(out, "https://example.com\n  status 200") {
		t.Errorf("successful audit not rendered:\n%s", out)
	}
	if !strings.Contains(stderr, "audit failed") {
		t.Errorf("stderr missing log line: %s", stderr)
	}
	// Only the valid URL reaches the network: page plus robots.txt.
	if f.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2", f.calls)
	}
}

func TestRoot_TimeoutFlag(t *testing.T) {
	f := &pageFetcher{}
	if _, _, err := execute(t, f, "-t", "3", "https://example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", f.timeout)
	}
}

func TestRoot_RulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("title_min_len: 1\ntitle_max_len: 3\nfetch_timeout: 7s\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	f := &pageFetcher{}
	out, _, err := execute(t, f, "-r", path, "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.timeout != 7*time.Second {
		t.Errorf("timeout = %v, want 7s", f.timeout)
	}
	if !strings.Contains(out, "(1–3 chars recommended)") {
		t.Errorf("rules not applied to title check:\n%s", out)
	}
}

func TestRoot_InvalidRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("max_passes: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	f := &pageFetcher{}
	if _, _, err := execute(t, f, "--rules", path, "https://example.com"); err == nil {
		t.Fatal("expected error for invalid rules")
	}
	if f.calls != 0 {
		t.Errorf("fetcher called %d times", f.calls)
	}
}
