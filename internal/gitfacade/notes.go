package gitfacade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ntolman/tddorc/internal/model"
)

// DefaultNotesRef is the dedicated notes reference used for handoff
// state, distinct from the user-visible refs/notes/commits.
const DefaultNotesRef = "refs/notes/tddorc-handoff"

// NotesStore reads and writes JSON-encoded HandoffState blobs attached to
// commits under a dedicated notes ref.
type NotesStore struct {
	Repo *Repo
	Ref  string
}

// NewNotesStore builds a NotesStore using DefaultNotesRef.
func NewNotesStore(repo *Repo) *NotesStore {
	return &NotesStore{Repo: repo, Ref: DefaultNotesRef}
}

func (n *NotesStore) ref() string {
	if n.Ref == "" {
		return DefaultNotesRef
	}
	return n.Ref
}

func recoveryHint(ref string) string {
	return fmt.Sprintf("recover manually with: git notes --ref %s list", ref)
}

// Write stores state as the note on commit, overwriting any prior note on
// that commit (exactly one note per commit is an invariant the caller
// relies on).
func (n *NotesStore) Write(ctx context.Context, commit string, state model.HandoffState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding handoff note: %w", err)
	}

	cmd := exec.CommandContext(ctx, "git", "notes", "--ref", n.ref(), "add", "-f", "-F", "-", commit)
	cmd.Dir = n.Repo.Root
	cmd.Stdin = bytes.NewReader(data)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("writing handoff note on %s: %s: %w (%s)", commit, strings.TrimSpace(out.String()), err, recoveryHint(n.ref()))
	}
	return nil
}

// Read returns the parsed HandoffState for commit, or ok=false if no note
// is attached.
func (n *NotesStore) Read(ctx context.Context, commit string) (state model.HandoffState, ok bool, err error) {
	out, code, runErr := n.Repo.run(ctx, "notes", "--ref", n.ref(), "show", commit)
	if runErr != nil {
		return model.HandoffState{}, false, fmt.Errorf("reading handoff note on %s: %w (%s)", commit, runErr, recoveryHint(n.ref()))
	}
	if code != 0 {
		return model.HandoffState{}, false, nil
	}
	if err := json.Unmarshal([]byte(out), &state); err != nil {
		return model.HandoffState{}, false, fmt.Errorf("parsing handoff note on %s: %w (%s)", commit, err, recoveryHint(n.ref()))
	}
	return state, true, nil
}

// Latest walks HEAD's ancestry and returns the first commit (newest
// first) that carries a handoff note.
func (n *NotesStore) Latest(ctx context.Context) (commit string, state model.HandoffState, ok bool, err error) {
	ids, err := n.Repo.Log(ctx)
	if err != nil {
		return "", model.HandoffState{}, false, err
	}
	for _, id := range ids {
		st, found, err := n.Read(ctx, id)
		if err != nil {
			return "", model.HandoffState{}, false, err
		}
		if found {
			return id, st, true, nil
		}
	}
	return "", model.HandoffState{}, false, nil
}

// Entry pairs a commit id with its decoded handoff note.
type Entry struct {
	Commit string
	State  model.HandoffState
}

// All enumerates every (commit, state) pair reachable from HEAD that
// carries a handoff note, newest-first.
func (n *NotesStore) All(ctx context.Context) ([]Entry, error) {
	ids, err := n.Repo.Log(ctx)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, id := range ids {
		st, found, err := n.Read(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			entries = append(entries, Entry{Commit: id, State: st})
		}
	}
	return entries, nil
}
