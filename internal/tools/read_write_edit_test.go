package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestReadWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := Write{}
	res := w.Execute(context.Background(), dir, map[string]any{
		"file_path": "a/b/c.txt",
		"content":   "hello",
	})
	if res.IsError {
		t.Fatalf("Write failed: %s", res.Output)
	}

	r := Read{}
	res = r.Execute(context.Background(), dir, map[string]any{"file_path": "a/b/c.txt"})
	if res.IsError {
		t.Fatalf("Read failed: %s", res.Output)
	}
	if res.Output != "hello" {
		t.Fatalf("Output = %q, want hello", res.Output)
	}
}

func TestRead_Missing(t *testing.T) {
	dir := t.TempDir()
	r := Read{}
	res := r.Execute(context.Background(), dir, map[string]any{"file_path": "nope.txt"})
	if !res.IsError {
		t.Fatal("expected error reading missing file")
	}
}

func TestRead_NotRegular(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "subdir")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	r := Read{}
	res := r.Execute(context.Background(), dir, map[string]any{"file_path": "subdir"})
	if !res.IsError {
		t.Fatal("expected error reading a directory")
	}
}

func TestWrite_EmptyContentAllowed(t *testing.T) {
	dir := t.TempDir()
	w := Write{}
	res := w.Execute(context.Background(), dir, map[string]any{"file_path": "empty.txt", "content": ""})
	if res.IsError {
		t.Fatalf("Write failed: %s", res.Output)
	}
	data, err := os.ReadFile(filepath.Join(dir, "empty.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty file, got %d bytes", len(data))
	}
}

func TestEdit_UniqueReplacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.go")
	if err := os.WriteFile(path, []byte("func f() { return old }"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := Edit{}
	res := e.Execute(context.Background(), dir, map[string]any{
		"file_path":  "f.go",
		"old_string": "return old",
		"new_string": "return new",
	})
	if res.IsError {
		t.Fatalf("Edit failed: %s", res.Output)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "func f() { return new }" {
		t.Fatalf("got %q", data)
	}
}

func TestEdit_FailsWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.go")
	os.WriteFile(path, []byte("abc"), 0o644)
	e := Edit{}
	res := e.Execute(context.Background(), dir, map[string]any{
		"file_path": "f.go", "old_string": "xyz", "new_string": "123",
	})
	if !res.IsError {
		t.Fatal("expected error when old_string absent")
	}
}

func TestEdit_FailsWhenNotUnique(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.go")
	os.WriteFile(path, []byte("abc abc"), 0o644)
	e := Edit{}
	res := e.Execute(context.Background(), dir, map[string]any{
		"file_path": "f.go", "old_string": "abc", "new_string": "xyz",
	})
	if !res.IsError {
		t.Fatal("expected error when old_string occurs more than once")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "abc abc" {
		t.Fatal("file should be unmodified on failure")
	}
}

func TestEdit_DeletionViaEmptyNewString(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.go")
	os.WriteFile(path, []byte("keep\nremove me\nkeep"), 0o644)
	e := Edit{}
	res := e.Execute(context.Background(), dir, map[string]any{
		"file_path": "f.go", "old_string": "remove me\n", "new_string": "",
	})
	if res.IsError {
		t.Fatalf("Edit failed: %s", res.Output)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "keep\nkeep" {
		t.Fatalf("got %q", data)
	}
}

func TestEdit_MultilineString(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.go")
	os.WriteFile(path, []byte("line1\nline2\nline3"), 0o644)
	e := Edit{}
	res := e.Execute(context.Background(), dir, map[string]any{
		"file_path": "f.go", "old_string": "line1\nline2", "new_string": "merged",
	})
	if res.IsError {
		t.Fatalf("Edit failed: %s", res.Output)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "merged\nline3" {
		t.Fatalf("got %q", data)
	}
}
