package linter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the linting configuration
type Config struct {
	Version string    `yaml:"version"`
	Lint    LintRules `yaml:"lint"`
}

// LintRules contains rule configuration
type LintRules struct {
	Rules          map[string]RuleConfig `yaml:"rules"`
	Ignore         []string              `yaml:"ignore"`
	MaxDiagnostics int                   `yaml:"max_diagnostics"`
}

// RuleConfig holds per-rule settings. A rule absent from the map runs with
// its built-in severity.
type RuleConfig struct {
	Enabled  *bool    `yaml:"enabled"`
	Severity Severity `yaml:"severity"`
}

// DefaultConfig returns default linting configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "v1",
		Lint: LintRules{
			Rules:          make(map[string]RuleConfig),
			Ignore:         []string{"vendor/**", "third_party/**"},
			MaxDiagnostics: 0,
		},
	}
}

// RuleEnabled reports whether the named rule should run.
func (c *Config) RuleEnabled(name string) bool {
	rc, ok := c.Lint.Rules[name]
	if !ok || rc.Enabled == nil {
		return true
	}
	return *rc.Enabled
}

// SeverityOverride returns the configured severity for a rule, if any.
func (c *Config) SeverityOverride(name string) (Severity, bool) {
	rc, ok := c.Lint.Rules[name]
	if !ok || rc.Severity == "" {
		return "", false
	}
	return rc.Severity, true
}

// MaxDiagnostics is the per-file diagnostic cap; 0 means unlimited.
func (c *Config) MaxDiagnostics() int {
	return c.Lint.MaxDiagnostics
}

// Ignored reports whether path matches any configured ignore pattern.
// Patterns use filepath.Match syntax; a trailing "/**" matches any path
// under the prefix.
func (c *Config) Ignored(path string) bool {
	norm := filepath.ToSlash(path)
	for _, pattern := range c.Lint.Ignore {
		if ok, _ := filepath.Match(pattern, norm); ok {
			return true
		}
		// Slash-free patterns also match the base name, so "*.tmp.ps1"
		// applies regardless of directory.
		if !strings.Contains(pattern, "/") {
			if ok, _ := filepath.Match(pattern, filepath.Base(norm)); ok {
				return true
			}
		}
		if prefix, found := strings.CutSuffix(pattern, "/**"); found {
			if norm == prefix || strings.HasPrefix(norm, prefix+"/") {
				return true
			}
		}
	}
	return false
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	for name, rc := range c.Lint.Rules {
		if rc.Severity != "" && !rc.Severity.Valid() {
			return fmt.Errorf("rule %s: invalid severity %q", name, rc.Severity)
		}
	}
	if c.Lint.MaxDiagnostics < 0 {
		return fmt.Errorf("max_diagnostics must be >= 0, got %d", c.Lint.MaxDiagnostics)
	}
	return nil
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	if config.Lint.Rules == nil {
		config.Lint.Rules = make(map[string]RuleConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigFromDir searches for config file in directory
func LoadConfigFromDir(dir string) (*Config, error) {
	configNames := []string{"pslint.yaml", "pslint.yml", ".pslint.yaml", ".pslint.yml"}

	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}

	// Return default if no config found
	return DefaultConfig(), nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
