package tools

import (
	"context"
	"os"
	"strings"
)

// Edit performs a single literal substring replacement, failing if
// old_string is absent or occurs more than once — uniqueness is enforced
// so the agent cannot silently touch the wrong occurrence. Supports
// multi-line strings and deletion via an empty new_string.
// Inputs: file_path, old_string, new_string.
type Edit struct{}

func (Edit) Name() string { return "Edit" }

func (Edit) Execute(_ context.Context, root string, input map[string]any) Result {
	path, ok2 := stringInput(input, "file_path")
	if !ok2 || path == "" {
		return fail("Edit: file_path is required")
	}
	oldStr, hasOld := stringInput(input, "old_string")
	if !hasOld || oldStr == "" {
		return fail("Edit: old_string is required")
	}
	newStr, _ := stringInput(input, "new_string") // empty new_string deletes

	full := resolve(root, path)
	data, err := os.ReadFile(full)
	if err != nil {
		return failf("Edit: %s: %v", path, err)
	}
	content := string(data)

	count := strings.Count(content, oldStr)
	switch {
	case count == 0:
		return failf("Edit: %s: old_string not found", path)
	case count > 1:
		return failf("Edit: %s: old_string occurs %d times, must be unique", path, count)
	}

	updated := strings.Replace(content, oldStr, newStr, 1)
	if err := os.WriteFile(full, []byte(updated), 0o644); err != nil {
		return failf("Edit: %s: %v", path, err)
	}
	return ok("edited " + path)
}
