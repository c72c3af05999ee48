package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelOverrideEntry is a single phase-name -> model mapping, kept in
// declaration order the same way the teacher's VarEntry/OrderedVars pair
// preserves YAML mapping order rather than losing it to a plain map.
type ModelOverrideEntry struct {
	Phase string
	Model string
}

// RoleOverrides is the decoded .tddorc/config.yaml, an optional
// companion to tdd.properties (SPEC_FULL.md §3) that lets an operator
// pin a different model per role, e.g.:
//
//	models:
//	  plan: claude-opus-4-1
//	  all: claude-sonnet-4-5-20250929
type RoleOverrides struct {
	Models []ModelOverrideEntry
}

// UnmarshalYAML reads the top-level "models" mapping, preserving
// declaration order, following the teacher's OrderedVars.UnmarshalYAML.
func (r *RoleOverrides) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("config: .tddorc/config.yaml: root must be a mapping")
	}
	for i := 0; i < len(value.Content)-1; i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]
		if keyNode.Value != "models" {
			continue
		}
		if valNode.Kind != yaml.MappingNode {
			return fmt.Errorf("config: .tddorc/config.yaml: 'models' must be a mapping")
		}
		for j := 0; j < len(valNode.Content)-1; j += 2 {
			phaseNode := valNode.Content[j]
			modelNode := valNode.Content[j+1]
			if phaseNode.Kind != yaml.ScalarNode || modelNode.Kind != yaml.ScalarNode {
				return fmt.Errorf("config: .tddorc/config.yaml: 'models' entries must be scalar")
			}
			r.Models = append(r.Models, ModelOverrideEntry{Phase: phaseNode.Value, Model: modelNode.Value})
		}
	}
	return nil
}

// asMap flattens Models into a lookup map, later entries winning on
// duplicate phase names.
func (r RoleOverrides) asMap() map[string]string {
	out := make(map[string]string, len(r.Models))
	for _, e := range r.Models {
		out[e.Phase] = e.Model
	}
	return out
}

// loadRoleOverrides reads and parses path. A missing file is not an
// error since the overrides file is optional.
func loadRoleOverrides(path string) (RoleOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RoleOverrides{}, nil
		}
		return RoleOverrides{}, err
	}
	var overrides RoleOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return RoleOverrides{}, fmt.Errorf("parsing: %w", err)
	}
	return overrides, nil
}
