// Package orchestrator drives the fixed PLAN -> RED -> GREEN -> REFACTOR
// -> PLAN cycle, applying the error-classification/retry/rollback policy
// from internal/classify around each phase.Executor.Run call, until the
// planner reports completion and test-list.md has no unchecked items
// left.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ntolman/tddorc/internal/backoff"
	"github.com/ntolman/tddorc/internal/classify"
	"github.com/ntolman/tddorc/internal/model"
	"github.com/ntolman/tddorc/internal/phase"
	"github.com/ntolman/tddorc/internal/prompt"
	"github.com/ntolman/tddorc/internal/ux"
)

// Orchestrator drives one workflow run against a single project checkout.
type Orchestrator struct {
	Phases     *phase.Executor
	MaxRetries int
}

// RunWorkflow drives the cycle starting from initial until the workflow
// completes or aborts. The returned error is non-nil only for
// orchestrator-level failures (e.g. reading test-list.md); a failed
// workflow due to ABORT is reported via WorkflowResult.Success = false,
// not a returned error.
func (o *Orchestrator) RunWorkflow(ctx context.Context, featureRequest string, initial model.HandoffState) (*model.WorkflowResult, error) {
	result := &model.WorkflowResult{
		FeatureRequest: featureRequest,
		StartedAt:      time.Now(),
		Final:          initial,
	}

	state := initial
	// A resumed note's Phase is the phase that last produced a commit
	// (e.g. RED); NextPhase is what comes after it (e.g. GREEN).
	// model.NewInitial sets NextPhase to PhasePlan for the same reason,
	// so the current phase always seeds from NextPhase: seeding from
	// Phase instead would re-execute the already-completed phase on
	// resume and produce a duplicate commit.
	currentPhase := initial.NextPhase
	if currentPhase == "" {
		currentPhase = model.PhasePlan
	}
	var cycleCommits []string

	for {
		if err := ctx.Err(); err != nil {
			return o.finish(result, state, false, fmt.Sprintf("cancelled: %v", err)), nil
		}
		if currentPhase == model.PhaseComplete {
			break
		}

		var retryInfo *prompt.RetryInfo
		if state.ErrorDetails != nil {
			retryInfo = &prompt.RetryInfo{
				Kind:       model.ErrorKind(state.ErrorDetails.Type),
				RetryCount: state.RetryCount,
				MaxRetries: o.MaxRetries,
				ErrorText:  state.ErrorDetails.Message,
			}
		}

		desc := ""
		if state.CurrentTest != nil {
			desc = state.CurrentTest.Description
		}
		ux.PhaseHeader(state.CycleNumber, currentPhase, desc)
		phaseStart := time.Now()

		res, runErr := o.Phases.Run(ctx, currentPhase, featureRequest, state, retryInfo)
		kind := classify.Classify(res.Output, runErr, currentPhase)
		problem := runErr != nil || classify.IsProblem(kind, currentPhase)

		if !problem {
			ux.PhaseComplete(currentPhase, time.Since(phaseStart))
			// Record a commit for this phase whenever one was actually
			// produced, whether or not the phase strictly requires one:
			// PLAN's system prompt has it commit test-list.md updates,
			// and a successful cycle's commitIds should reflect all of
			// plan/test/implementation/refactor commits in order.
			if head, ok, err := o.Phases.Repo.HEAD(ctx); err == nil && ok && head != res.PreviousHEAD {
				cycleCommits = append(cycleCommits, head)
			}
			state = res.State.ClearError()

			if currentPhase == model.PhaseRefactor {
				desc := ""
				if state.CurrentTest != nil {
					desc = state.CurrentTest.Description
				}
				cr := model.CycleResult{
					CycleNumber:     state.CycleNumber,
					TestDescription: desc,
					Success:         true,
					CommitIDs:       cycleCommits,
				}
				result.Cycles = append(result.Cycles, cr)
				result.TotalTests++
				ux.CycleComplete(cr)
				state = advanceCycle(state, desc)
				cycleCommits = nil
			}

			if currentPhase == model.PhasePlan && state.Phase == model.PhaseComplete {
				allChecked, err := allTestsChecked(o.Phases.Repo.Root)
				if err != nil {
					return nil, fmt.Errorf("orchestrator: checking test-list.md: %w", err)
				}
				if !allChecked {
					return o.finish(result, state, false, "planner reported completion but test-list.md still has unchecked items"), nil
				}
				return o.finish(result, state, true, ""), nil
			}

			currentPhase = state.NextPhase
			continue
		}

		action := classify.Recover(kind, currentPhase, state.RetryCount, o.MaxRetries)
		extract := classify.Extract(res.Output)
		ux.PhaseFail(currentPhase, kind, extract)

		switch action {
		case classify.ActionContinue:
			// CONTINUE means "this failure was expected" (a RED test
			// that fails as designed), which presupposes the phase
			// actually produced its required commit. If it didn't,
			// the phase is still broken regardless of what the output
			// looked like, so fall back to a context-carrying retry.
			if runErr != nil {
				state = retryState(state, kind, extract)
				continue
			}
			state = res.State.ClearError()
			currentPhase = state.NextPhase
			continue

		case classify.ActionAbort:
			msg := fmt.Sprintf("aborted in %s after %d retries: %s", currentPhase, state.RetryCount, extract)
			final := state.Clone()
			final.Error = &msg
			final.ErrorDetails = &model.ErrorDetails{Type: "ABORT_" + string(kind), Message: extract}
			if currentPhase == model.PhaseGreen || currentPhase == model.PhaseRefactor {
				desc := ""
				if final.CurrentTest != nil {
					desc = final.CurrentTest.Description
				}
				result.Cycles = append(result.Cycles, model.CycleResult{
					CycleNumber:     final.CycleNumber,
					TestDescription: desc,
					Success:         false,
					CommitIDs:       cycleCommits,
					Error:           &msg,
				})
			}
			return o.finish(result, final, false, msg), nil

		case classify.ActionRollbackAndRetry:
			if res.PreviousHEAD != "" {
				ux.Rollback(currentPhase, res.PreviousHEAD)
				if err := o.Phases.Repo.Reset(ctx, res.PreviousHEAD); err != nil {
					fmt.Fprintf(os.Stderr, "warning: rollback to %s failed: %v\n", res.PreviousHEAD, err)
				}
			}
			state = retryState(state, kind, extract)
			ux.Retry(currentPhase, kind, action, state.RetryCount, o.MaxRetries)
			continue

		case classify.ActionWaitAndRetry:
			delay := backoff.Delay(backoff.Schedule, state.RetryCount+1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return o.finish(result, state, false, fmt.Sprintf("cancelled during backoff: %v", ctx.Err())), nil
			}
			state = retryState(state, kind, extract)
			ux.Retry(currentPhase, kind, action, state.RetryCount, o.MaxRetries)
			continue

		default: // classify.ActionRetryWithContext
			state = retryState(state, kind, extract)
			ux.Retry(currentPhase, kind, action, state.RetryCount, o.MaxRetries)
			continue
		}
	}

	return o.finish(result, state, true, ""), nil
}

func retryState(state model.HandoffState, kind model.ErrorKind, extract string) model.HandoffState {
	next := state.Clone()
	next.RetryCount++
	next.Error = &extract
	next.ErrorDetails = &model.ErrorDetails{Type: string(kind), Message: extract}
	return next
}

// advanceCycle moves desc from pendingTests to completedTests and bumps
// cycleNumber, following the invariant that cycleNumber increments by
// exactly 1 on the REFACTOR -> PLAN transition.
func advanceCycle(state model.HandoffState, desc string) model.HandoffState {
	next := state.Clone()
	if desc != "" {
		var pending []string
		for _, p := range next.PendingTests {
			if p == desc {
				continue
			}
			pending = append(pending, p)
		}
		next.PendingTests = pending
		next.CompletedTests = append(next.CompletedTests, desc)
	}
	next.CurrentTest = nil
	next.CycleNumber++
	return next
}

func (o *Orchestrator) finish(result *model.WorkflowResult, final model.HandoffState, success bool, errMsg string) *model.WorkflowResult {
	result.Final = final
	result.Success = success
	result.EndedAt = time.Now()
	if errMsg != "" {
		result.Error = &errMsg
	}
	return result
}
