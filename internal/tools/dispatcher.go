package tools

import (
	"context"
	"fmt"
	"time"
)

// Dispatcher routes a tool name to exactly one Executor.
type Dispatcher struct {
	root      string
	executors map[string]Executor
}

// New builds the fixed six-tool dispatcher rooted at root, with the given
// Bash timeout (zero uses DefaultBashTimeout).
func New(root string, bashTimeout time.Duration) *Dispatcher {
	executors := map[string]Executor{
		"Read":  Read{},
		"Write": Write{},
		"Edit":  Edit{},
		"Bash":  Bash{Timeout: bashTimeout},
		"Glob":  Glob{},
		"Grep":  Grep{},
	}
	return &Dispatcher{root: root, executors: executors}
}

// Dispatch executes the named tool. An unknown tool name fails with an
// explicit error rather than panicking or being silently ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, input map[string]any) Result {
	ex, found := d.executors[name]
	if !found {
		return fail(fmt.Sprintf("unknown tool %q", name))
	}
	return ex.Execute(ctx, d.root, input)
}

// Names returns the fixed tool name list in canonical order.
func (d *Dispatcher) Names() []string {
	return []string{"Read", "Write", "Edit", "Bash", "Glob", "Grep"}
}
