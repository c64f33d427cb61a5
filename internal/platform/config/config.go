package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	errInvalidPort           = errors.New("config: invalid PORT number")
	errConcurrencyOutOfRange = errors.New("config: AUDIT_CONCURRENCY must be 1-100")
	errNoCORSOrigins         = errors.New("config: CORS_ALLOWED_ORIGINS must list at least one origin")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port             string
	LogLevel         string
	AuditConcurrency int
	// RulesFile optionally points at a YAML file overriding audit thresholds.
	RulesFile          string
	WatchRules         bool
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "ERROR"),
		AuditConcurrency:   getEnvAsInt("AUDIT_CONCURRENCY", 4),
		RulesFile:          getEnv("AUDIT_RULES_FILE", ""),
		WatchRules:         getEnvAsBool("AUDIT_RULES_WATCH", false),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.AuditConcurrency < 1 || c.AuditConcurrency > 100 {
		return fmt.Errorf("%w: got %d", errConcurrencyOutOfRange, c.AuditConcurrency)
	}

	if len(c.CORSAllowedOrigins) == 0 {
		return errNoCORSOrigins
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// getEnvAsList splits a comma-separated value, dropping blank entries.
func getEnvAsList(key string, fallback []string) []string {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
