package invoker

import (
	sdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/ntolman/tddorc/internal/model"
)

// toolDescriptions mirrors the six agent-facing tool schemas required by
// spec.md §6: PascalCase names, underscore-style parameter names matching
// the model's own convention rather than Go's camelCase.
var toolDescriptions = map[string]struct {
	description string
	schema      map[string]any
}{
	"Read": {
		description: "Read the contents of a file at the given path.",
		schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"file_path": map[string]any{"type": "string", "description": "Path to the file, relative to the project root unless absolute."},
			},
			"required": []string{"file_path"},
		},
	},
	"Write": {
		description: "Write content to a file at the given path, creating or overwriting it.",
		schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"file_path": map[string]any{"type": "string", "description": "Path to the file, relative to the project root unless absolute."},
				"content":   map[string]any{"type": "string", "description": "Full file content to write."},
			},
			"required": []string{"file_path", "content"},
		},
	},
	"Edit": {
		description: "Replace a single exact occurrence of old_string with new_string in a file.",
		schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"file_path":  map[string]any{"type": "string", "description": "Path to the file, relative to the project root unless absolute."},
				"old_string": map[string]any{"type": "string", "description": "Exact text to replace; must occur exactly once in the file."},
				"new_string": map[string]any{"type": "string", "description": "Replacement text."},
			},
			"required": []string{"file_path", "old_string", "new_string"},
		},
	},
	"Bash": {
		description: "Run a shell command and return its combined stdout/stderr.",
		schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"command": map[string]any{"type": "string", "description": "Shell command to execute."},
			},
			"required": []string{"command"},
		},
	},
	"Glob": {
		description: "Find files matching a glob pattern, supporting ** and brace expansion.",
		schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pattern": map[string]any{"type": "string", "description": "Glob pattern, e.g. src/**/*.go or {a,b}.txt."},
				"path":    map[string]any{"type": "string", "description": "Directory to search from; defaults to the project root."},
			},
			"required": []string{"pattern"},
		},
	},
	"Grep": {
		description: "Search file contents for a regular expression pattern.",
		schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pattern": map[string]any{"type": "string", "description": "Regular expression to search for."},
				"path":    map[string]any{"type": "string", "description": "Directory to search from; defaults to the project root."},
				"glob":    map[string]any{"type": "string", "description": "Optional glob filter restricting which files are searched."},
			},
			"required": []string{"pattern"},
		},
	},
}

// schemasFor builds the Anthropic tool params for the given specs. An
// empty spec list means the agent is granted the full fixed tool set.
func schemasFor(specs []model.ToolSpec) []sdk.ToolUnionParam {
	names := make([]string, 0, len(specs))
	if len(specs) == 0 {
		names = []string{"Read", "Write", "Edit", "Bash", "Glob", "Grep"}
	} else {
		for _, s := range specs {
			names = append(names, s.Name)
		}
	}

	out := make([]sdk.ToolUnionParam, 0, len(names))
	for _, name := range names {
		def, ok := toolDescriptions[name]
		if !ok {
			continue
		}
		u := sdk.ToolUnionParamOfTool(sdk.ToolInputSchemaParam{ExtraFields: def.schema}, name)
		if u.OfTool != nil {
			u.OfTool.Description = sdk.String(def.description)
		}
		out = append(out, u)
	}
	return out
}
