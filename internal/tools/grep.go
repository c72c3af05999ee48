package tools

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Grep walks files under the search root and emits path:lineNumber:line
// for each regular-expression match. Inputs: pattern (required), path or
// glob (optional filters).
type Grep struct{}

func (Grep) Name() string { return "Grep" }

func (Grep) Execute(_ context.Context, root string, input map[string]any) Result {
	pattern, ok2 := stringInput(input, "pattern")
	if !ok2 || pattern == "" {
		return fail("Grep: pattern is required")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return failf("Grep: invalid pattern: %v", err)
	}

	searchRoot := root
	if p, has := stringInput(input, "path"); has && p != "" {
		searchRoot = resolve(root, p)
	}
	globPattern, hasGlob := stringInput(input, "glob")

	var lines []string
	walkErr := filepath.WalkDir(searchRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != searchRoot && isSkippable(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if hasGlob && globPattern != "" {
			rel, relErr := filepath.Rel(searchRoot, p)
			if relErr != nil {
				return nil
			}
			if !matchGlob(globPattern, filepath.ToSlash(rel)) {
				return nil
			}
		}
		matched, matchErr := grepFile(p, re)
		if matchErr != nil {
			return nil // best-effort: skip unreadable/binary files
		}
		lines = append(lines, matched...)
		return nil
	})
	if walkErr != nil {
		return failf("Grep: %v", walkErr)
	}

	if len(lines) == 0 {
		return ok("No matches found")
	}
	return ok(strings.Join(lines, "\n"))
}

func grepFile(path string, re *regexp.Regexp) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if re.MatchString(line) {
			out = append(out, fmt.Sprintf("%s:%d:%s", path, lineNum, line))
		}
	}
	return out, scanner.Err()
}
