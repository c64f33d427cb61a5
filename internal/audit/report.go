package audit

import (
	"unicode/utf8"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

// Run evaluates every check against an already fetched page and returns the
// report. It performs no I/O and is safe for concurrent use.
func Run(cfg Config, targetURL string, resp Response, doc Document, robots RobotsProbe) model.AuditReport {
	page := &Page{URL: targetURL, Response: resp, Doc: doc, Robots: robots, Config: cfg}

	b := newBuilder()
	for _, c := range Checks() {
		for _, f := range c.Run(page, c.Points) {
			b.add(c.Category, f)
		}
	}

	return model.AuditReport{
		URL:        targetURL,
		StatusCode: resp.StatusCode,
		Scores: model.Scores{
			Security:      b.score(Security),
			SEO:           b.score(SEO),
			Performance:   b.score(Performance),
			Accessibility: b.score(Accessibility),
		},
		Summary: model.Summary{
			Passes:          head(b.passes, cfg.MaxPasses),
			Issues:          head(b.issues, cfg.MaxIssues),
			Recommendations: head(b.issues, cfg.MaxRecommendations),
		},
		Page: model.PageInfo{
			Title:          pageTitle(doc),
			DescriptionLen: utf8.RuneCountInString(metaDescription(doc)),
			SizeBytes:      resp.Size(),
			ResourceCount:  resourceCount(doc),
		},
	}
}

// builder accumulates findings in evaluation order. Lists are append-only.
type builder struct {
	scores map[Category]int
	passes []string
	issues []string
}

func newBuilder() *builder {
	return &builder{
		scores: make(map[Category]int, len(Categories)),
		passes: []string{},
		issues: []string{},
	}
}

func (b *builder) add(cat Category, f Finding) {
	if f.Pass {
		b.passes = append(b.passes, f.Message)
		b.scores[cat] += f.Points
		return
	}
	b.issues = append(b.issues, f.Message)
}

func (b *builder) score(cat Category) int {
	return max(0, min(100, b.scores[cat]))
}

// head returns a copy of the first n entries of s.
func head(s []string, n int) []string {
	n = min(n, len(s))
	out := make([]string, n)
	copy(out, s[:n])
	return out
}
