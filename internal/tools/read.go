package tools

import (
	"context"
	"os"
)

// Read reads a UTF-8 text file. Inputs: file_path.
type Read struct{}

func (Read) Name() string { return "Read" }

func (Read) Execute(_ context.Context, root string, input map[string]any) Result {
	path, ok2 := stringInput(input, "file_path")
	if !ok2 || path == "" {
		return fail("Read: file_path is required")
	}
	full := resolve(root, path)
	info, err := os.Stat(full)
	if err != nil {
		return failf("Read: %s: %v", path, err)
	}
	if !info.Mode().IsRegular() {
		return failf("Read: %s is not a regular file", path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return failf("Read: %s: %v", path, err)
	}
	return ok(string(data))
}
