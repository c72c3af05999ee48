package tools

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestBash_Success(t *testing.T) {
	dir := t.TempDir()
	b := Bash{}
	res := b.Execute(context.Background(), dir, map[string]any{"command": "echo hi"})
	if res.IsError {
		t.Fatalf("expected success, got: %s", res.Output)
	}
	if !strings.Contains(res.Output, "hi") {
		t.Fatalf("output = %q", res.Output)
	}
}

func TestBash_NonZeroExit(t *testing.T) {
	dir := t.TempDir()
	b := Bash{}
	res := b.Execute(context.Background(), dir, map[string]any{"command": "exit 3"})
	if !res.IsError {
		t.Fatal("expected error for nonzero exit")
	}
	if !strings.Contains(res.Output, "Exit code 3") {
		t.Fatalf("output = %q", res.Output)
	}
}

func TestBash_Timeout(t *testing.T) {
	dir := t.TempDir()
	b := Bash{Timeout: 50 * time.Millisecond}
	res := b.Execute(context.Background(), dir, map[string]any{"command": "sleep 5"})
	if !res.IsError {
		t.Fatal("expected error for timeout")
	}
	if !strings.Contains(res.Output, "timed out") {
		t.Fatalf("output = %q", res.Output)
	}
}

func TestBash_MissingCommand(t *testing.T) {
	dir := t.TempDir()
	b := Bash{}
	res := b.Execute(context.Background(), dir, map[string]any{})
	if !res.IsError {
		t.Fatal("expected error for missing command")
	}
}
