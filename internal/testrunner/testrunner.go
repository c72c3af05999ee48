// Package testrunner auto-detects the test command for a project
// (spec.md §6) and runs it via the same subprocess idiom the rest of
// tddorc uses for external tools, rather than shelling out through the
// agent's own Bash tool — the orchestrator uses this only for the
// advisory precondition check in SPEC_FULL.md §8, since RED/GREEN/
// REFACTOR otherwise run tests themselves via the agent's Bash tool.
package testrunner

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNoTestCommand is returned when no framework was detected and no
// override was configured; spec.md §6 treats this as a configuration
// error.
var ErrNoTestCommand = errors.New("testrunner: no test command detected and none configured")

// Runner runs the project's test command and reports combined output.
type Runner struct {
	Root    string
	Command string
}

// Detect picks the test command for root using the first-match-wins
// rules in spec.md §6, preferring override if non-empty.
func Detect(root, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if hasJUnitPom(root) {
		return "mvn test", nil
	}
	if fileExists(filepath.Join(root, "build.gradle")) || fileExists(filepath.Join(root, "build.gradle.kts")) {
		return gradleCommand(root), nil
	}
	if hasNpmTestScript(root) {
		return "npm test", nil
	}
	if fileExists(filepath.Join(root, "pytest.ini")) || referencesPytest(filepath.Join(root, "pyproject.toml")) || fileExists(filepath.Join(root, "setup.py")) {
		return "pytest", nil
	}

	return "", ErrNoTestCommand
}

// New builds a Runner for root with the detected or configured command.
func New(root, override string) (*Runner, error) {
	cmd, err := Detect(root, override)
	if err != nil {
		return nil, err
	}
	return &Runner{Root: root, Command: cmd}, nil
}

// Run executes the configured test command and returns its combined
// stdout/stderr along with whether it exited zero.
func (r *Runner) Run(ctx context.Context) (output string, passed bool, err error) {
	cmd := exec.CommandContext(ctx, "bash", "-c", r.Command)
	cmd.Dir = r.Root
	out, runErr := cmd.CombinedOutput()
	if runErr == nil {
		return string(out), true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return string(out), false, nil
	}
	return string(out), false, runErr
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func hasJUnitPom(root string) bool {
	data, err := os.ReadFile(filepath.Join(root, "pom.xml"))
	if err != nil {
		return false
	}
	return strings.Contains(string(data), "junit")
}

func hasNpmTestScript(root string) bool {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return false
	}
	return strings.Contains(string(data), `"test"`)
}

func referencesPytest(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), "pytest")
}

func gradleCommand(root string) string {
	wrapper := "./gradlew"
	if runtime.GOOS == "windows" {
		wrapper = "gradlew.bat"
	}
	if fileExists(filepath.Join(root, wrapper)) {
		return wrapper + " test"
	}
	if runtime.GOOS == "windows" {
		return "gradle.bat test"
	}
	return "gradle test"
}
