package tools

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Glob returns paths matching a glob pattern (including brace expansion
// and **) rooted at an optional path (default project root). Hidden and
// common build directories are skipped. Inputs: pattern, path.
type Glob struct{}

func (Glob) Name() string { return "Glob" }

func (Glob) Execute(_ context.Context, root string, input map[string]any) Result {
	pattern, ok2 := stringInput(input, "pattern")
	if !ok2 || pattern == "" {
		return fail("Glob: pattern is required")
	}
	searchRoot := root
	if p, has := stringInput(input, "path"); has && p != "" {
		searchRoot = resolve(root, p)
	}
	if _, err := os.Stat(searchRoot); err != nil {
		return failf("Glob: %v", err)
	}

	var matches []string
	for _, expanded := range expandBraces(pattern) {
		m, err := globWalk(searchRoot, expanded)
		if err != nil {
			return failf("Glob: %v", err)
		}
		matches = append(matches, m...)
	}

	matches = dedupeSorted(matches)
	if len(matches) == 0 {
		return ok("No matches found")
	}
	return ok(strings.Join(matches, "\n"))
}

// globWalk walks searchRoot and returns paths (relative to searchRoot)
// matching pattern, which may contain a "**" segment meaning "any number
// of directories".
func globWalk(searchRoot, pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	var matches []string

	err := filepath.WalkDir(searchRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // best-effort: skip unreadable entries
		}
		if d.IsDir() {
			if p != searchRoot && isSkippable(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(searchRoot, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if matchGlob(pattern, rel) {
			matches = append(matches, rel)
		}
		return nil
	})
	return matches, err
}

// matchGlob matches a slash-separated path against a pattern that may
// contain "**" as a whole path segment.
func matchGlob(pattern, name string) bool {
	pSegs := strings.Split(pattern, "/")
	nSegs := strings.Split(name, "/")
	return matchSegments(pSegs, nSegs)
}

func matchSegments(pSegs, nSegs []string) bool {
	if len(pSegs) == 0 {
		return len(nSegs) == 0
	}
	if pSegs[0] == "**" {
		if len(pSegs) == 1 {
			return true
		}
		for i := 0; i <= len(nSegs); i++ {
			if matchSegments(pSegs[1:], nSegs[i:]) {
				return true
			}
		}
		return false
	}
	if len(nSegs) == 0 {
		return false
	}
	ok, err := path.Match(pSegs[0], nSegs[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pSegs[1:], nSegs[1:])
}

// expandBraces expands a single level of shell-style {a,b,c} alternation.
func expandBraces(pattern string) []string {
	start := strings.Index(pattern, "{")
	if start < 0 {
		return []string{pattern}
	}
	end := strings.Index(pattern[start:], "}")
	if end < 0 {
		return []string{pattern}
	}
	end += start

	prefix := pattern[:start]
	alts := strings.Split(pattern[start+1:end], ",")
	suffix := pattern[end+1:]

	var out []string
	for _, alt := range alts {
		out = append(out, expandBraces(prefix+alt+suffix)...)
	}
	return out
}

func isSkippable(name string) bool {
	if skipDirs[name] {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func dedupeSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
