package audit

import (
	"errors"
	"fmt"
	"time"
)

var (
	errTitleRange       = errors.New("audit config: title length range is invalid")
	errDescriptionRange = errors.New("audit config: description length range is invalid")
	errNonPositive      = errors.New("audit config: value must be positive")
	errEmptyList        = errors.New("audit config: list must not be empty")
)

// Config holds the thresholds and header lists the checks evaluate against.
// A zero Config is not usable; start from DefaultConfig.
type Config struct {
	TitleMinLen       int `yaml:"title_min_len"`
	TitleMaxLen       int `yaml:"title_max_len"`
	DescriptionMinLen int `yaml:"description_min_len"`
	DescriptionMaxLen int `yaml:"description_max_len"`

	// MaxPageBytes is the largest body size, inclusive, that still passes.
	MaxPageBytes int `yaml:"max_page_bytes"`
	// MaxResources caps the combined img, script and link element count.
	MaxResources int `yaml:"max_resources"`

	MaxPasses          int `yaml:"max_passes"`
	MaxIssues          int `yaml:"max_issues"`
	MaxRecommendations int `yaml:"max_recommendations"`

	// FetchTimeout bounds each outbound fetch (page and robots.txt).
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	SecurityHeaders      []string `yaml:"security_headers"`
	CacheHeaders         []string `yaml:"cache_headers"`
	CompressionEncodings []string `yaml:"compression_encodings"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		TitleMinLen:        10,
		TitleMaxLen:        60,
		DescriptionMinLen:  50,
		DescriptionMaxLen:  160,
		MaxPageBytes:       2_000_000,
		MaxResources:       100,
		MaxPasses:          10,
		MaxIssues:          15,
		MaxRecommendations: 5,
		FetchTimeout:       10 * time.Second,
		SecurityHeaders: []string{
			"content-security-policy",
			"x-content-type-options",
			"x-frame-options",
			"referrer-policy",
			"strict-transport-security",
		},
		CacheHeaders:         []string{"cache-control", "etag", "last-modified"},
		CompressionEncodings: []string{"gzip", "br", "zstd"},
	}
}

// Validate reports the first structural problem found in c.
func (c Config) Validate() error {
	if c.TitleMinLen < 0 || c.TitleMaxLen < c.TitleMinLen {
		return fmt.Errorf("%w: [%d, %d]", errTitleRange, c.TitleMinLen, c.TitleMaxLen)
	}
	if c.DescriptionMinLen < 0 || c.DescriptionMaxLen < c.DescriptionMinLen {
		return fmt.Errorf("%w: [%d, %d]", errDescriptionRange, c.DescriptionMinLen, c.DescriptionMaxLen)
	}

	positives := []struct {
		name  string
		value int
	}{
		{"max_page_bytes", c.MaxPageBytes},
		{"max_resources", c.MaxResources},
		{"max_passes", c.MaxPasses},
		{"max_issues", c.MaxIssues},
		{"max_recommendations", c.MaxRecommendations},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s = %d", errNonPositive, p.name, p.value)
		}
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: fetch_timeout = %s", errNonPositive, c.FetchTimeout)
	}

	lists := []struct {
		name  string
		value []string
	}{
		{"security_headers", c.SecurityHeaders},
		{"cache_headers", c.CacheHeaders},
		{"compression_encodings", c.CompressionEncodings},
	}
	for _, l := range lists {
		if len(l.value) == 0 {
			return fmt.Errorf("%w: %s", errEmptyList, l.name)
		}
	}
	return nil
}
