// Package phase drives a single PLAN/RED/GREEN/REFACTOR step: build the
// agent's prompt, invoke the model through a tool-use loop, and persist
// the resulting HandoffState as a git note on whatever commit the agent
// produced. It is the per-step counterpart to internal/orchestrator,
// which drives the cycle across many steps.
package phase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ntolman/tddorc/internal/gitfacade"
	"github.com/ntolman/tddorc/internal/invoker"
	"github.com/ntolman/tddorc/internal/model"
	"github.com/ntolman/tddorc/internal/planjson"
	"github.com/ntolman/tddorc/internal/prompt"
	"github.com/ntolman/tddorc/internal/tools"
	"github.com/ntolman/tddorc/internal/ux"
)

// Executor runs one phase of the TDD cycle against a single project
// checkout.
type Executor struct {
	Agents  map[model.Phase]model.AgentConfig
	Invoker *invoker.Invoker
	Tools   *tools.Dispatcher
	Repo    *gitfacade.Repo
	Notes   *gitfacade.NotesStore
}

// Result is everything a phase run produces that the orchestrator's
// error classifier (internal/classify) needs: the candidate next state,
// the most recent Bash output (or the agent's final reply if it never
// ran Bash) to pattern-match against, and the commit HEAD pointed to
// before the phase started, so a ROLLBACK_AND_RETRY can reset to it.
type Result struct {
	State        model.HandoffState
	Output       string
	PreviousHEAD string
	// RunID identifies this single agent conversation. It is included
	// in the returned error when the agent invocation itself fails; it
	// is not written to the handoff note.
	RunID string
}

// Run invokes the agent configured for phase, applies the phase-specific
// post-processing rules, and returns the HandoffState to hand to the
// next phase.
//
// PLAN does not require a commit: the planner only needs to choose the
// next test case (or declare the cycle complete) and may do so without
// touching the working tree. RED, GREEN, and REFACTOR all require a new
// commit, since each of those phases' work product is a change to the
// repository.
func (e *Executor) Run(ctx context.Context, ph model.Phase, featureRequest string, state model.HandoffState, retry *prompt.RetryInfo) (Result, error) {
	cfg, ok := e.Agents[ph]
	if !ok {
		return Result{State: state}, fmt.Errorf("phase: no agent configured for %s", ph)
	}

	runID := uuid.NewString()

	headBefore, hadHead, err := e.Repo.HEAD(ctx)
	if err != nil {
		return Result{State: state, RunID: runID}, fmt.Errorf("phase: reading HEAD before %s: %w", ph, err)
	}

	userPrompt := prompt.Build(ph, state, featureRequest, retry)
	reply, turns, err := e.Invoker.Run(ctx, cfg, userPrompt, e.Tools)
	if err != nil {
		return Result{State: state, PreviousHEAD: headBefore, RunID: runID}, fmt.Errorf("phase: invoking %s agent (run %s): %w", ph, runID, err)
	}
	for _, t := range turns {
		for _, c := range t.ToolCalls {
			ux.ToolUse(c.Name, formatToolInput(c.Input))
		}
	}

	output := lastBashOutput(turns)
	if output == "" {
		output = reply
	}

	next := state.Clone()
	next.Phase = ph

	switch ph {
	case model.PhasePlan:
		if err := e.applyPlan(reply, &next); err != nil {
			return Result{State: state, Output: output, PreviousHEAD: headBefore, RunID: runID}, err
		}
		// PLAN may or may not touch the tree (e.g. updating
		// test-list.md); persist a note only if it committed.
		if head, ok, err := e.Repo.HEAD(ctx); err == nil && ok && (!hadHead || head != headBefore) {
			if err := e.Notes.Write(ctx, head, next); err != nil {
				return Result{State: state, Output: output, PreviousHEAD: headBefore, RunID: runID}, fmt.Errorf("phase: writing PLAN note: %w", err)
			}
		}
		return Result{State: next, Output: output, PreviousHEAD: headBefore, RunID: runID}, nil

	case model.PhaseRed, model.PhaseGreen, model.PhaseRefactor:
		head, ok, err := e.Repo.HEAD(ctx)
		if err != nil {
			return Result{State: state, Output: output, PreviousHEAD: headBefore, RunID: runID}, fmt.Errorf("phase: reading HEAD after %s: %w", ph, err)
		}
		if !ok || (hadHead && head == headBefore) {
			msg := fmt.Sprintf("%s agent did not produce a new commit", ph)
			next.Error = &msg
			next.ErrorDetails = &model.ErrorDetails{Type: string(model.ErrUnknown), Message: msg}
			return Result{State: next, Output: output, PreviousHEAD: headBefore, RunID: runID}, fmt.Errorf("phase: %s", msg)
		}
		next.NextPhase = ph.Next()
		if err := e.Notes.Write(ctx, head, next); err != nil {
			return Result{State: state, Output: output, PreviousHEAD: headBefore, RunID: runID}, fmt.Errorf("phase: writing %s note: %w", ph, err)
		}
		return Result{State: next, Output: output, PreviousHEAD: headBefore, RunID: runID}, nil

	default:
		return Result{State: state}, fmt.Errorf("phase: unsupported phase %s", ph)
	}
}

// formatToolInput renders a tool call's input map compactly for console
// narration; ux.ToolUse truncates it further for display.
func formatToolInput(input map[string]any) string {
	if cmd, ok := input["command"].(string); ok {
		return cmd
	}
	if path, ok := input["path"].(string); ok {
		return path
	}
	return fmt.Sprint(input)
}

// lastBashOutput returns the output of the most recent Bash tool call
// across turns, in chronological order, or "" if the agent never ran one.
func lastBashOutput(turns []invoker.Turn) string {
	var out string
	for _, t := range turns {
		for _, c := range t.ToolCalls {
			if c.Name == "Bash" {
				out = c.Result.Output
			}
		}
	}
	return out
}

// applyPlan parses the planner's reply for a currentTest selection and
// updates next in place. A parsed nil currentTest means the planner has
// declared the workflow complete.
func (e *Executor) applyPlan(reply string, next *model.HandoffState) error {
	out, err := planjson.Parse(reply)
	if err != nil {
		return fmt.Errorf("phase: parsing PLAN output: %w", err)
	}
	if out.CurrentTest == nil {
		next.Phase = model.PhaseComplete
		next.NextPhase = model.PhaseComplete
		next.CurrentTest = nil
		return nil
	}
	if err := out.CurrentTest.Validate(); err != nil {
		return fmt.Errorf("phase: invalid test case from PLAN: %w", err)
	}
	next.CurrentTest = out.CurrentTest
	next.NextPhase = model.PhaseRed
	return nil
}
