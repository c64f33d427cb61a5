package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Bahjat/site-audit-tool/internal/audit"
)

// LoadRules reads audit thresholds from a YAML file. Keys absent from the
// file keep their default values; the merged result is validated.
func LoadRules(path string) (audit.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return audit.Config{}, fmt.Errorf("rules: read %q: %w", path, err)
	}

	cfg := audit.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return audit.Config{}, fmt.Errorf("rules: parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return audit.Config{}, fmt.Errorf("rules: %w", err)
	}

	return cfg, nil
}

// Rules returns the thresholds for c: the defaults, or the contents of
// RulesFile when one is configured.
func (c Config) Rules() (audit.Config, error) {
	if c.RulesFile == "" {
		return audit.DefaultConfig(), nil
	}
	return LoadRules(c.RulesFile)
}
