package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Write creates or overwrites a file, creating missing parent directories.
// Inputs: file_path, content.
type Write struct{}

func (Write) Name() string { return "Write" }

func (Write) Execute(_ context.Context, root string, input map[string]any) Result {
	path, ok2 := stringInput(input, "file_path")
	if !ok2 || path == "" {
		return fail("Write: file_path is required")
	}
	content, _ := stringInput(input, "content") // empty content is allowed
	full := resolve(root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return failf("Write: %s: %v", path, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return failf("Write: %s: %v", path, err)
	}
	return ok(fmt.Sprintf("wrote %d bytes to %s", len(content), path))
}
