package config

import (
	"fmt"
	"os"
)

// Validate checks the resolved Config for the required fields spec.md
// §6 demands, following the teacher's validate.go idiom of a single pass
// returning the first error found with a "config: ..." prefix.
func Validate(cfg *Config) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("config: ANTHROPIC_API_KEY is required")
	}
	if cfg.Model == "" {
		return fmt.Errorf("config: model identifier is required")
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("config: max retries must be >= 0, got %d", cfg.MaxRetries)
	}
	if cfg.BashTimeout <= 0 {
		return fmt.Errorf("config: bash.timeout must be > 0, got %d", cfg.BashTimeout)
	}
	info, err := os.Stat(cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("config: project root %q: %w", cfg.ProjectRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("config: project root %q is not a directory", cfg.ProjectRoot)
	}
	return nil
}
