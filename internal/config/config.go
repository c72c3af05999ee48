// Package config loads operator configuration from the environment and
// the project's tdd.properties file, adapted from the teacher's
// internal/config loader (there, a YAML phase-pipeline file; here, a
// flat env + key/value properties file per spec.md §6), plus an optional
// YAML file of per-role model overrides in the same structural spirit as
// the teacher's OrderedVars-preserving decoder.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ntolman/tddorc/internal/properties"
)

// DefaultModel is used when TDD_MODEL is unset. The configured model is
// not checked at startup: if the Anthropic API rejects it, the first
// agent invocation fails and that failure is classified and retried like
// any other phase failure until the retry limit aborts the run. No other
// model is ever substituted.
const DefaultModel = "claude-sonnet-4-5-20250929"

const (
	DefaultMaxRetries  = 3
	DefaultBashTimeout = 120
)

// Config is the fully resolved operator configuration for one run.
type Config struct {
	APIKey      string
	ProjectRoot string
	MaxRetries  int
	Model       string
	BashTimeout int
	TestCommand string

	// ModelOverrides maps a phase name ("plan", "red", "green",
	// "refactor") or "all" to a model identifier that overrides Model
	// for that phase, read from .tddorc/config.yaml if present.
	ModelOverrides map[string]string
}

// ModelFor returns the effective model identifier for a phase name,
// preferring a phase-specific override, then an "all" override, then
// the base Model.
func (c *Config) ModelFor(phaseName string) string {
	if m, ok := c.ModelOverrides[phaseName]; ok && m != "" {
		return m
	}
	if m, ok := c.ModelOverrides["all"]; ok && m != "" {
		return m
	}
	return c.Model
}

// Load resolves Config from the environment and projectRoot's
// tdd.properties file.
func Load(projectRoot string) (*Config, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")

	if envRoot := os.Getenv("TDD_PROJECT_ROOT"); envRoot != "" {
		projectRoot = envRoot
	}
	if projectRoot == "" {
		var err error
		projectRoot, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("config: resolving project root: %w", err)
		}
	}

	props, err := properties.Load(filepath.Join(projectRoot, "tdd.properties"))
	if err != nil {
		return nil, fmt.Errorf("config: reading tdd.properties: %w", err)
	}

	maxRetries := DefaultMaxRetries
	if v := os.Getenv("TDD_MAX_RETRIES"); v != "" {
		n, perr := parseNonNegativeInt(v)
		if perr != nil {
			return nil, fmt.Errorf("config: TDD_MAX_RETRIES: %w", perr)
		}
		maxRetries = n
	}

	model := DefaultModel
	if v := os.Getenv("TDD_MODEL"); v != "" {
		model = v
	}

	overrides, err := loadRoleOverrides(filepath.Join(projectRoot, ".tddorc", "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("config: reading .tddorc/config.yaml: %w", err)
	}

	cfg := &Config{
		APIKey:         apiKey,
		ProjectRoot:    projectRoot,
		MaxRetries:     maxRetries,
		Model:          model,
		BashTimeout:    props.Int("bash.timeout", DefaultBashTimeout),
		TestCommand:    props.String("test.command", ""),
		ModelOverrides: overrides.asMap(),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseNonNegativeInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("must be non-negative, got %d", n)
	}
	return n, nil
}
