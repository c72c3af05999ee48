package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ntolman/tddorc/internal/ux"
)

const fallbackTestList = `- [ ] describe the first behavior to implement
- [ ] describe the next behavior to implement
`

const fallbackProperties = `bash.timeout=120
`

// writeFallbackFiles writes a minimal default test-list.md and
// tdd.properties when AI generation fails.
func writeFallbackFiles(targetDir string) error {
	files := map[string]string{
		"test-list.md":   fallbackTestList,
		"tdd.properties": fallbackProperties,
	}

	var written []string
	for relPath, content := range files {
		fullPath := filepath.Join(targetDir, relPath)
		if err := writeFileAtomic(fullPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", relPath, err)
		}
		written = append(written, relPath)
	}

	if err := os.MkdirAll(filepath.Join(targetDir, ".tddorc"), 0755); err != nil {
		return fmt.Errorf("creating .tddorc: %w", err)
	}

	printSuccess("default template", written)
	fmt.Printf("\n  %sCustomize test-list.md with the tests your feature request needs.%s\n", ux.Dim, ux.Reset)
	fmt.Printf("\n  Next: %stddorc run \"<feature request>\"%s\n\n", ux.Cyan, ux.Reset)
	return nil
}

// writeFileAtomic writes data to a temporary file and renames it into
// place, so a crash mid-write never leaves test-list.md or
// tdd.properties half-written.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
