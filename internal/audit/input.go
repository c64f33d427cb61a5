package audit

import (
	"net/http"
	"strings"
)

// Headers is a case-insensitive view of response headers. Keys are stored
// lower-cased; repeated fields are joined with ", ".
type Headers map[string]string

// NewHeaders builds a Headers from an http.Header.
func NewHeaders(h http.Header) Headers {
	out := make(Headers, len(h))
	for name, values := range h {
		key := strings.ToLower(name)
		if prev, ok := out[key]; ok {
			values = append([]string{prev}, values...)
		}
		out[key] = strings.Join(values, ", ")
	}
	return out
}

// Has reports whether a header named name is present.
func (h Headers) Has(name string) bool {
	_, ok := h[strings.ToLower(name)]
	return ok
}

// Get returns the header value, or "" when absent.
func (h Headers) Get(name string) string {
	return h[strings.ToLower(name)]
}

// Response is the fetched primary page.
type Response struct {
	StatusCode int
	Headers    Headers
	// Body holds the decoded content, possibly cut at the fetcher's memory cap.
	Body []byte
	// Discarded counts decoded bytes read past the cap and dropped.
	Discarded int64
	Text      string
}

// Size is the full decoded length of the body, including discarded bytes.
func (r Response) Size() int {
	return len(r.Body) + int(r.Discarded)
}

// RobotsProbe records the outcome of fetching {origin}/robots.txt.
// A failed fetch leaves StatusCode at zero.
type RobotsProbe struct {
	StatusCode int
}

// Found reports whether robots.txt was served with 200 OK.
func (p RobotsProbe) Found() bool {
	return p.StatusCode == http.StatusOK
}

// Element is a single node of a parsed document.
type Element interface {
	// Attr returns the attribute value and whether the attribute exists.
	Attr(name string) (string, bool)
	Text() string
}

// Document is a read-only query view over parsed HTML. Results are in
// document order and contain each element at most once.
type Document interface {
	// Title returns the text of the first title element, untrimmed.
	Title() string
	// FindAll returns every element whose tag is one of tags.
	FindAll(tags ...string) []Element
	// FindWithAttr returns every element carrying at least one of attrs.
	FindWithAttr(attrs ...string) []Element
}
