package tools

import "path/filepath"

// resolve returns path unchanged if already absolute, otherwise joins it
// onto root.
func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
