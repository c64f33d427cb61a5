package pageinsight

import (
	"bufio"
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/html/charset"

	"github.com/Bahjat/site-audit-tool/internal/audit"
)

// Fetcher defines how the engine retrieves a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*audit.Response, error)
}

// HTTPClient implements Fetcher using a real HTTP client.
type HTTPClient struct {
	client *http.Client
}

const (
	maxRedirects = 5
	userAgent    = "AuditBot/1.0"

	// acceptEncoding is sent explicitly so the transport leaves the
	// Content-Encoding header in place; the body is decoded here instead.
	acceptEncoding = "gzip, deflate, br"

	maxResponseBody = 10 << 20
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")

	errUnsupportedEncoding = errors.New("unsupported content encoding")
)

// NewHTTPClient returns a Fetcher backed by an http.Client with the given
// timeout, a transport that refuses private and reserved addresses, and a
// redirect policy that stops SSRF via redirect chains.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext:         publicOnlyDialer(timeout).DialContext,
				MaxConnsPerHost:     10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: safeRedirectPolicy,
		},
	}
}

// safeRedirectPolicy validates redirect targets and limits the redirect chain length.
func safeRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", errBlockedRedirect, req.URL.Scheme)
	}
	return nil
}

// Fetch performs a GET and returns status, headers, the decoded body and
// its text. Non-2xx statuses are not errors. At most maxResponseBody decoded
// bytes are kept; the rest is counted so the page size stays exact.
func (c *HTTPClient) Fetch(ctx context.Context, targetURL string) (*audit.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Encoding", acceptEncoding)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	encoding := resp.Header.Get("Content-Encoding")
	content, err := decodeContent(resp.Body, encoding)
	if err != nil {
		return nil, fmt.Errorf("decode %s body: %w", encoding, err)
	}

	body, discarded, err := readCapped(content, maxResponseBody)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &audit.Response{
		StatusCode: resp.StatusCode,
		Headers:    audit.NewHeaders(resp.Header),
		Body:       body,
		Discarded:  discarded,
		Text:       decodeText(body, resp.Header.Get("Content-Type")),
	}, nil
}

// decodeContent wraps r to undo the content coding we advertised. A coding
// we cannot decode fails the fetch rather than feeding binary to the parser.
func decodeContent(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return r, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(r)
		if errors.Is(err, io.EOF) {
			return r, nil // empty body
		}
		return zr, err
	case "deflate":
		// Servers disagree on whether deflate means zlib-wrapped or raw.
		br := bufio.NewReader(r)
		hdr, err := br.Peek(2)
		switch {
		case len(hdr) == 0:
			return br, nil
		case err == nil && isZlibHeader(hdr):
			return zlib.NewReader(br)
		}
		return flate.NewReader(br), nil
	case "br":
		return brotli.NewReader(r), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedEncoding, encoding)
	}
}

// isZlibHeader reports whether hdr is a valid RFC 1950 CMF/FLG pair.
func isZlibHeader(hdr []byte) bool {
	return hdr[0]&0x0f == 8 && (uint16(hdr[0])<<8|uint16(hdr[1]))%31 == 0
}

// readCapped keeps the first limit bytes of r and counts the remainder.
func readCapped(r io.Reader, limit int64) ([]byte, int64, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, 0, err
	}
	discarded, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, 0, err
	}
	return body, discarded, nil
}

// decodeText converts the body to UTF-8 using the declared or sniffed charset.
func decodeText(body []byte, contentType string) string {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return string(body)
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return string(body)
	}
	return string(text)
}
