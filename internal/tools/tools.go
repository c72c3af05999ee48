// Package tools implements the six filesystem/shell primitives exposed to
// LLM agents (Read, Write, Edit, Bash, Glob, Grep) behind a common
// Executor contract, plus a Dispatcher that routes a tool name to its
// executor. Paths are resolved relative to the project root unless
// absolute, and executor failures are always reported as a Result with
// IsError set — they never propagate as Go errors past Dispatch, so the
// invoking agent can see and react to them.
package tools

import (
	"context"
	"fmt"
)

// Result is the outcome of one tool invocation.
type Result struct {
	Output  string
	IsError bool
}

func ok(output string) Result { return Result{Output: output} }
func fail(output string) Result {
	return Result{Output: output, IsError: true}
}
func failf(format string, a ...any) Result {
	return fail(fmt.Sprintf(format, a...))
}

// Executor is the contract every tool implements.
type Executor interface {
	Name() string
	Execute(ctx context.Context, root string, input map[string]any) Result
}

// skipDirs mirrors the project-context gathering rules: directories never
// walked by Glob or Grep.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	".venv":        true,
	"__pycache__":  true,
	".tddorc":      true,
}

func stringInput(input map[string]any, key string) (string, bool) {
	v, ok := input[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
