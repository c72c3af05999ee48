package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGlob_SimplePattern(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.go":        "",
		"b.go":        "",
		"c.txt":       "",
		"sub/d.go":    "",
		"vendor/e.go": "",
	})
	g := Glob{}
	res := g.Execute(context.Background(), dir, map[string]any{"pattern": "*.go"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Output)
	}
	if strings.Contains(res.Output, "sub/d.go") {
		t.Fatal("*.go should not match nested files")
	}
	if !strings.Contains(res.Output, "a.go") || !strings.Contains(res.Output, "b.go") {
		t.Fatalf("missing matches: %s", res.Output)
	}
}

func TestGlob_DoubleStarAndVendorSkip(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"sub/d.go":    "",
		"sub/sub2/e.go": "",
		"vendor/f.go": "",
	})
	g := Glob{}
	res := g.Execute(context.Background(), dir, map[string]any{"pattern": "**/*.go"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Output)
	}
	if strings.Contains(res.Output, "vendor/f.go") {
		t.Fatal("vendor/ should be skipped")
	}
	if !strings.Contains(res.Output, "sub/d.go") || !strings.Contains(res.Output, "sub/sub2/e.go") {
		t.Fatalf("missing recursive matches: %s", res.Output)
	}
}

func TestGlob_BraceExpansion(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.go": "", "a.ts": "", "a.py": "",
	})
	g := Glob{}
	res := g.Execute(context.Background(), dir, map[string]any{"pattern": "*.{go,ts}"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Output)
	}
	if !strings.Contains(res.Output, "a.go") || !strings.Contains(res.Output, "a.ts") {
		t.Fatalf("missing matches: %s", res.Output)
	}
	if strings.Contains(res.Output, "a.py") {
		t.Fatalf("should not match .py: %s", res.Output)
	}
}

func TestGlob_NoMatches(t *testing.T) {
	dir := t.TempDir()
	g := Glob{}
	res := g.Execute(context.Background(), dir, map[string]any{"pattern": "*.nonexistent"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Output)
	}
	if res.Output != "No matches found" {
		t.Fatalf("output = %q", res.Output)
	}
}

func TestGlob_MissingPathFails(t *testing.T) {
	dir := t.TempDir()
	g := Glob{}
	res := g.Execute(context.Background(), dir, map[string]any{
		"pattern": "*.go", "path": "does-not-exist",
	})
	if !res.IsError {
		t.Fatal("expected error for missing path")
	}
}

func TestGrep_FindsMatches(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.go": "func Foo() {}\nfunc Bar() {}\n",
	})
	gr := Grep{}
	res := gr.Execute(context.Background(), dir, map[string]any{"pattern": "func Foo"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Output)
	}
	if !strings.Contains(res.Output, "a.go:1:func Foo() {}") {
		t.Fatalf("output = %q", res.Output)
	}
}

func TestGrep_InvalidRegex(t *testing.T) {
	dir := t.TempDir()
	gr := Grep{}
	res := gr.Execute(context.Background(), dir, map[string]any{"pattern": "("})
	if !res.IsError {
		t.Fatal("expected error for invalid regex")
	}
}

func TestGrep_NoMatches(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.go": "nothing here"})
	gr := Grep{}
	res := gr.Execute(context.Background(), dir, map[string]any{"pattern": "zzz_not_found"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Output)
	}
	if res.Output != "No matches found" {
		t.Fatalf("output = %q", res.Output)
	}
}

func TestGrep_GlobFilter(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.go": "target",
		"a.txt": "target",
	})
	gr := Grep{}
	res := gr.Execute(context.Background(), dir, map[string]any{"pattern": "target", "glob": "*.go"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Output)
	}
	if strings.Contains(res.Output, "a.txt") {
		t.Fatalf("glob filter did not exclude a.txt: %s", res.Output)
	}
}

func TestDispatcher_UnknownTool(t *testing.T) {
	dir := t.TempDir()
	d := New(dir, 0)
	res := d.Dispatch(context.Background(), "NotATool", nil)
	if !res.IsError {
		t.Fatal("expected error for unknown tool")
	}
}

func TestDispatcher_RoutesToExecutor(t *testing.T) {
	dir := t.TempDir()
	d := New(dir, 0)
	res := d.Dispatch(context.Background(), "Write", map[string]any{"file_path": "x.txt", "content": "y"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Output)
	}
	data, err := os.ReadFile(filepath.Join(dir, "x.txt"))
	if err != nil || string(data) != "y" {
		t.Fatalf("file not written correctly: %v %q", err, data)
	}
}
