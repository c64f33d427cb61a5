package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bahjat/site-audit-tool/internal/audit"
	"github.com/Bahjat/site-audit-tool/internal/model"
	"github.com/Bahjat/site-audit-tool/internal/pageinsight"
	"github.com/Bahjat/site-audit-tool/internal/platform/config"
	"github.com/Bahjat/site-audit-tool/internal/platform/logger"
)

var errAuditsFailed = errors.New("one or more audits failed")

type options struct {
	jsonOut     bool
	concurrency int
	timeout     int
	rulesFile   string
	logLevel    string
}

// newRootCmd builds the CLI. Flag defaults come from the environment
// configuration shared with the API server.
func newRootCmd(env config.Config, newFetcher func(time.Duration) pageinsight.Fetcher) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "siteaudit URL...",
		Short:        "Score web pages for security, SEO, performance and accessibility",
		Example:      "siteaudit https://example.com\nsiteaudit --json -c 8 https://example.com https://example.org",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudits(cmd, args, opts, newFetcher)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.jsonOut, "json", "j", false, "print reports as JSON")
	flags.IntVarP(&opts.concurrency, "concurrency", "c", env.AuditConcurrency, "number of URLs audited in parallel")
	flags.IntVarP(&opts.timeout, "timeout", "t", 0, "per-fetch timeout in seconds (default from rules, 10)")
	flags.StringVarP(&opts.rulesFile, "rules", "r", env.RulesFile, "YAML file overriding audit thresholds")
	flags.StringVar(&opts.logLevel, "log-level", env.LogLevel, "log level: DEBUG, INFO, WARN, ERROR")

	return cmd
}

func runAudits(cmd *cobra.Command, urls []string, opts options, newFetcher func(time.Duration) pageinsight.Fetcher) error {
	log := logger.New(cmd.ErrOrStderr(), opts.logLevel)

	rules := audit.DefaultConfig()
	if opts.rulesFile != "" {
		var err error
		if rules, err = config.LoadRules(opts.rulesFile); err != nil {
			return err
		}
	}
	if opts.timeout > 0 {
		rules.FetchTimeout = time.Duration(opts.timeout) * time.Second
	}

	engine := pageinsight.NewEngine(newFetcher(rules.FetchTimeout), rules)
	results := pageinsight.AuditAll(cmd.Context(), engine, urls, opts.concurrency)

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Error("audit failed", "url", r.URL, "error", r.Err)
		}
	}

	out := cmd.OutOrStdout()
	var err error
	if opts.jsonOut {
		err = renderJSON(out, results)
	} else {
		err = renderText(out, results)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errAuditsFailed, failed, len(results))
	}
	return nil
}

type jsonResult struct {
	URL    string             `json:"url"`
	Report *model.AuditReport `json:"report,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func renderJSON(w io.Writer, results []pageinsight.BatchResult) error {
	out := make([]jsonResult, len(results))
	for i, r := range results {
		out[i] = jsonResult{URL: r.URL, Report: r.Report}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderText(w io.Writer, results []pageinsight.BatchResult) error {
	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := renderOne(w, r); err != nil {
			return err
		}
	}
	return nil
}

func renderOne(w io.Writer, r pageinsight.BatchResult) error {
	p := &printer{w: w}
	p.printf("%s\n", r.URL)
	if r.Err != nil {
		p.printf("  error: %v\n", r.Err)
		return p.err
	}

	rep := r.Report
	p.printf("  status %d, %d bytes, %d resources, title %q\n",
		rep.StatusCode, rep.Page.SizeBytes, rep.Page.ResourceCount, rep.Page.Title)
	p.printf("  security %3d  seo %3d  performance %3d  accessibility %3d\n",
		rep.Scores.Security, rep.Scores.SEO, rep.Scores.Performance, rep.Scores.Accessibility)
	p.list("passes", "+", rep.Summary.Passes)
	p.list("issues", "-", rep.Summary.Issues)
	p.list("recommendations", "*", rep.Summary.Recommendations)
	return p.err
}

// printer remembers the first write error so rendering code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) list(title, bullet string, items []string) {
	if len(items) == 0 {
		return
	}
	p.printf("  %s:\n", title)
	for _, it := range items {
		p.printf("    %s %s\n", bullet, it)
	}
}
