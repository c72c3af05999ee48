package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig(root string) *Config {
	return &Config{
		APIKey:      "sk-ant-test",
		ProjectRoot: root,
		MaxRetries:  3,
		Model:       "claude-test-model",
		BashTimeout: 120,
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := Validate(validConfig(t.TempDir())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig(t.TempDir())
	cfg.APIKey = ""
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "ANTHROPIC_API_KEY") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_MissingModel(t *testing.T) {
	cfg := validConfig(t.TempDir())
	cfg.Model = ""
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "model identifier") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_NegativeMaxRetries(t *testing.T) {
	cfg := validConfig(t.TempDir())
	cfg.MaxRetries = -1
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "max retries") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_NonPositiveBashTimeout(t *testing.T) {
	cfg := validConfig(t.TempDir())
	cfg.BashTimeout = 0
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "bash.timeout") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_ProjectRootMustExist(t *testing.T) {
	cfg := validConfig("/nonexistent/path/for/tddorc/test")
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for missing project root")
	}
}

func TestValidate_ProjectRootMustBeDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := validConfig(file)
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Fatalf("got %v", err)
	}
}
