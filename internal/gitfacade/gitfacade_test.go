package gitfacade

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/ntolman/tddorc/internal/model"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v: %s", args, err, out)
		}
	}
	run("init", "-q")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test")
	return &Repo{Root: dir}
}

func TestRepo_CommitAndHEAD(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	if _, ok, err := r.HEAD(ctx); err != nil || ok {
		t.Fatalf("expected no HEAD on empty repo, ok=%v err=%v", ok, err)
	}

	if err := os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	id, err := r.Commit(ctx, "test: initial")
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("expected non-empty commit id")
	}

	head, ok, err := r.HEAD(ctx)
	if err != nil || !ok {
		t.Fatalf("HEAD: ok=%v err=%v", ok, err)
	}
	if head != id {
		t.Fatalf("HEAD = %s, want %s", head, id)
	}
}

func TestRepo_CommitAllowsEmpty(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("hi"), 0o644)
	first, err := r.Commit(ctx, "feat: first")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Commit(ctx, "refactor: nothing to do")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("expected a distinct empty commit")
	}
}

func TestRepo_Reset(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("v1"), 0o644)
	first, err := r.Commit(ctx, "test: v1")
	if err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("v2"), 0o644)
	if _, err := r.Commit(ctx, "feat: v2"); err != nil {
		t.Fatal(err)
	}

	if err := r.Reset(ctx, first); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(r.Root, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v1" {
		t.Fatalf("content after reset = %q, want v1", data)
	}
	head, _, _ := r.HEAD(ctx)
	if head != first {
		t.Fatalf("HEAD after reset = %s, want %s", head, first)
	}
}

func TestRepo_BackupTagPointsAtHEAD(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("v1"), 0o644)
	head, err := r.Commit(ctx, "test: v1")
	if err != nil {
		t.Fatal(err)
	}

	tag, err := r.BackupTag(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if tag == "" {
		t.Fatal("expected a non-empty tag name")
	}

	cmd := exec.Command("git", "rev-parse", tag)
	cmd.Dir = r.Root
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("rev-parse %s: %v: %s", tag, err, out)
	}
	if got := string(out); got[:len(head)] != head {
		t.Fatalf("tag %s points to %q, want %s", tag, got, head)
	}
}

func TestRepo_BackupTagNamesAreUnique(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("v1"), 0o644)
	r.Commit(ctx, "test: v1")

	first, err := r.BackupTag(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.BackupTag(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("expected distinct backup tag names, got %s twice", first)
	}
}

func TestRepo_HasUncommittedChanges(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("v1"), 0o644)
	dirty, err := r.HasUncommittedChanges(ctx)
	if err != nil || !dirty {
		t.Fatalf("dirty=%v err=%v, want dirty=true", dirty, err)
	}
	r.Commit(ctx, "test: v1")
	dirty, err = r.HasUncommittedChanges(ctx)
	if err != nil || dirty {
		t.Fatalf("dirty=%v err=%v, want dirty=false", dirty, err)
	}
}

func TestNotesStore_WriteReadOverwrite(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("v1"), 0o644)
	commit, err := r.Commit(ctx, "test: v1")
	if err != nil {
		t.Fatal(err)
	}

	notes := NewNotesStore(r)
	st := model.NewInitial([]string{"a", "b"})
	if err := notes.Write(ctx, commit, st); err != nil {
		t.Fatal(err)
	}

	got, ok, err := notes.Read(ctx, commit)
	if err != nil || !ok {
		t.Fatalf("Read: ok=%v err=%v", ok, err)
	}
	if !got.Equal(st) {
		t.Fatalf("got %+v, want %+v", got, st)
	}

	st2 := st.ClearError()
	st2.RetryCount = 9
	if err := notes.Write(ctx, commit, st2); err != nil {
		t.Fatal(err)
	}
	got2, ok, err := notes.Read(ctx, commit)
	if err != nil || !ok {
		t.Fatal("expected note after overwrite")
	}
	if got2.RetryCount != 9 {
		t.Fatalf("RetryCount = %d, want 9 (overwrite should replace, not append)", got2.RetryCount)
	}
}

func TestNotesStore_ReadAbsent(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("v1"), 0o644)
	commit, err := r.Commit(ctx, "test: v1")
	if err != nil {
		t.Fatal(err)
	}
	notes := NewNotesStore(r)
	_, ok, err := notes.Read(ctx, commit)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no note")
	}
}

func TestNotesStore_LatestWalksHistory(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	notes := NewNotesStore(r)

	os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("v1"), 0o644)
	first, _ := r.Commit(ctx, "test: v1")
	st := model.NewInitial(nil)
	st.Phase = model.PhaseRed
	notes.Write(ctx, first, st)

	os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("v2"), 0o644)
	r.Commit(ctx, "feat: v2 (no note)")

	commit, got, ok, err := notes.Latest(ctx)
	if err != nil || !ok {
		t.Fatalf("Latest: ok=%v err=%v", ok, err)
	}
	if commit != first {
		t.Fatalf("Latest commit = %s, want %s (should skip commits without notes)", commit, first)
	}
	if got.Phase != model.PhaseRed {
		t.Fatalf("Phase = %s, want RED", got.Phase)
	}
}

func TestNotesStore_All_NewestFirst(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	notes := NewNotesStore(r)

	os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("v1"), 0o644)
	first, _ := r.Commit(ctx, "test: v1")
	notes.Write(ctx, first, model.NewInitial(nil))

	os.WriteFile(filepath.Join(r.Root, "a.txt"), []byte("v2"), 0o644)
	second, _ := r.Commit(ctx, "feat: v2")
	st2 := model.NewInitial(nil)
	st2.CycleNumber = 2
	notes.Write(ctx, second, st2)

	entries, err := notes.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Commit != second || entries[1].Commit != first {
		t.Fatalf("entries not newest-first: %+v", entries)
	}
}
