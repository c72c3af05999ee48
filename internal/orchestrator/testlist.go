package orchestrator

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// testListName is the well-known markdown file the planner maintains at
// the project root, one checkbox per test (spec.md §6).
const testListName = "test-list.md"

// allTestsChecked reports whether every checkbox in projectRoot's
// test-list.md is marked [x]. A missing file counts as "all checked"
// since a project with no test list has nothing left to check.
func allTestsChecked(projectRoot string) (bool, error) {
	f, err := os.Open(filepath.Join(projectRoot, testListName))
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "- [ ]") {
			return false, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return true, nil
}
