// Package gitfacade wraps the git binary as the sole channel for
// committing agent work, rolling back failed attempts, and attaching
// durable handoff metadata via git notes. Git is invoked as a subprocess
// (no vendored git library), following this codebase's convention of
// driving external binaries through os/exec rather than wrapping a
// client library for every external system.
package gitfacade

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/uuid"
)

// Repo is a facade over repository-level git operations rooted at Root.
type Repo struct {
	Root string
}

// run executes a git subcommand with Root as the working directory and
// returns merged stdout+stderr, the exit code, and any non-exit error.
func (r *Repo) run(ctx context.Context, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Root
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	code, runErr := exitCode(err)
	if runErr != nil {
		return out.String(), 0, fmt.Errorf("git %s: %w", strings.Join(args, " "), runErr)
	}
	return out.String(), code, nil
}

// HEAD returns the current commit id. ok is false on an empty repository
// (no commits yet) rather than returning an error.
func (r *Repo) HEAD(ctx context.Context) (id string, ok bool, err error) {
	out, code, err := r.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", false, err
	}
	if code != 0 {
		return "", false, nil
	}
	return strings.TrimSpace(out), true, nil
}

// HasUncommittedChanges reports whether the working tree has any staged
// or unstaged modifications.
func (r *Repo) HasUncommittedChanges(ctx context.Context) (bool, error) {
	out, _, err := r.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Commit stages all changes (including deletions) and creates a commit
// with the given message, returning the new commit id. If there is
// nothing to commit, an empty commit is still created so the caller's
// commit-per-phase invariant holds (e.g. an empty REFACTOR commit).
func (r *Repo) Commit(ctx context.Context, message string) (string, error) {
	if _, _, err := r.run(ctx, "add", "-A"); err != nil {
		return "", err
	}
	if _, code, err := r.run(ctx, "commit", "--allow-empty", "-m", message); err != nil {
		return "", err
	} else if code != 0 {
		return "", fmt.Errorf("git commit: exit code %d", code)
	}
	id, ok, err := r.HEAD(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("git commit: no HEAD after commit")
	}
	return id, nil
}

// Reset performs a hard reset of the working tree to the given commit.
func (r *Repo) Reset(ctx context.Context, commit string) error {
	out, code, err := r.run(ctx, "reset", "--hard", commit)
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("git reset --hard %s: %s", commit, strings.TrimSpace(out))
	}
	return nil
}

// BackupTag creates a uniquely-named lightweight tag pointing at HEAD
// and returns its name, so a manual `rollback` has a recovery point
// distinct from the orchestrator's own frequent automatic
// ROLLBACK_AND_RETRY resets (which are not tagged, to avoid flooding
// the ref namespace on every retry).
func (r *Repo) BackupTag(ctx context.Context) (string, error) {
	head, ok, err := r.HEAD(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("git backup tag: no HEAD to tag")
	}
	name := "tddorc-backup-" + uuid.NewString()
	if _, code, err := r.run(ctx, "tag", name, head); err != nil {
		return "", err
	} else if code != 0 {
		return "", fmt.Errorf("git tag %s: exit code %d", name, code)
	}
	return name, nil
}

// Diff returns the unified diff for a commit against its parent, or
// against the empty tree if commit is the repository root.
func (r *Repo) Diff(ctx context.Context, commit string) (string, error) {
	out, code, err := r.run(ctx, "diff", commit+"^!", commit)
	if err != nil {
		return "", err
	}
	if code == 0 && strings.TrimSpace(out) != "" {
		return out, nil
	}
	// commit^ doesn't exist for a root commit; diff against the empty tree.
	emptyTree, _, err := r.run(ctx, "hash-object", "-t", "tree", "/dev/null")
	if err != nil {
		return out, nil
	}
	out2, _, err := r.run(ctx, "diff", strings.TrimSpace(emptyTree), commit)
	if err != nil {
		return out, nil
	}
	return out2, nil
}

// ChangedFiles lists the paths touched by a commit.
func (r *Repo) ChangedFiles(ctx context.Context, commit string) ([]string, error) {
	out, _, err := r.run(ctx, "show", "--name-only", "--pretty=format:", commit)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// Message returns the full commit message for a commit id.
func (r *Repo) Message(ctx context.Context, commit string) (string, error) {
	out, _, err := r.run(ctx, "log", "-1", "--pretty=format:%B", commit)
	if err != nil {
		return "", err
	}
	return out, nil
}

// Log returns commit ids reachable from HEAD, newest-first.
func (r *Repo) Log(ctx context.Context) ([]string, error) {
	out, code, err := r.run(ctx, "log", "--format=%H")
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, nil
	}
	var ids []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line != "" {
			ids = append(ids, line)
		}
	}
	return ids, nil
}
