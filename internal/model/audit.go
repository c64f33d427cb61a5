package model

// AuditReport holds the complete result of auditing a web page.
type AuditReport struct {
	URL        string   `json:"url"`
	StatusCode int      `json:"status_code"`
	Scores     Scores   `json:"scores"`
	Summary    Summary  `json:"summary"`
	Page       PageInfo `json:"page"`
}

// Scores holds the per-category totals, each within [0, 100].
type Scores struct {
	Security      int `json:"security"`
	SEO           int `json:"seo"`
	Performance   int `json:"performance"`
	Accessibility int `json:"accessibility"`
}

// Summary lists findings in evaluation order. Recommendations are the
// leading issues.
type Summary struct {
	Passes          []string `json:"passes"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// PageInfo describes the fetched page.
type PageInfo struct {
	Title          string `json:"title"`
	DescriptionLen int    `json:"description_len"`
	SizeBytes      int    `json:"size_bytes"`
	ResourceCount  int    `json:"resource_count"`
}

// HealthResponse is returned from the service root.
type HealthResponse struct {
	OK       bool   `json:"ok"`
	Service  string `json:"service"`
	TryAudit string `json:"try_audit"`
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}
