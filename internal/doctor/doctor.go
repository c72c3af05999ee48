// Package doctor gathers context about the last failed phase and asks
// the configured LLM for a diagnosis, adapted from the teacher's
// internal/doctor (which shells out to the claude CLI against
// artifacts/logs); here the diagnosis call goes through the same
// invoker.Invoker used for ordinary phase agents, against the handoff
// notes recorded by internal/gitfacade rather than on-disk log files.
package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ntolman/tddorc/internal/config"
	"github.com/ntolman/tddorc/internal/gitfacade"
	"github.com/ntolman/tddorc/internal/invoker"
	"github.com/ntolman/tddorc/internal/model"
	"github.com/ntolman/tddorc/internal/tools"
	"github.com/ntolman/tddorc/internal/ux"
)

const diagPrompt = `You are diagnosing a failed tddorc workflow phase. Analyze the context below and provide a concise diagnosis.

## Failed Phase
%s

## Error Details
%s

## Current Test
%s
%s
Instructions:
1. Identify what went wrong from the error details.
2. Classify this as a WORKFLOW problem (orchestration, git state, config)
   or a CODE problem (the implementation the agent was writing).
3. Suggest specific fixes.
4. Recommend the next command to run:
   - tddorc resume                         (continue from the last note)
   - tddorc rollback <commit> --force      (discard the broken commit first)
   - Fix the underlying issue first, then retry

Be direct and concise. Focus on actionable advice.`

// Run gathers the latest recorded failure context and sends it to the
// configured model for diagnosis. It returns early with no error (and a
// message to stdout) if the latest handoff state carries no error.
func Run(ctx context.Context, cfg *config.Config, repo *gitfacade.Repo, notes *gitfacade.NotesStore, inv *invoker.Invoker) error {
	_, st, ok, err := notes.Latest(ctx)
	if err != nil {
		return fmt.Errorf("doctor: reading handoff notes: %w", err)
	}
	if !ok || st.ErrorDetails == nil {
		fmt.Println("No failed phase to diagnose.")
		return nil
	}

	diagText := buildPrompt(st)

	fmt.Printf("\n%s%s══ Doctor: diagnosing %s (cycle %d) ══%s\n\n",
		ux.Bold, ux.Cyan, st.Phase, st.CycleNumber, ux.Reset)

	diagCfg := model.AgentConfig{
		Name:         "doctor",
		SystemPrompt: "You are a terse, practical diagnostic assistant for a TDD automation tool.",
		Model:        cfg.ModelFor("doctor"),
	}
	dispatch := tools.New(repo.Root, time.Duration(cfg.BashTimeout)*time.Second)
	reply, _, err := inv.Run(ctx, diagCfg, diagText, dispatch)
	if err != nil {
		return fmt.Errorf("doctor: diagnosis request failed: %w", err)
	}
	fmt.Println(reply)

	fmt.Println()
	ux.ResumeHint(repo.Root)
	return nil
}

func buildPrompt(st model.HandoffState) string {
	errDetails := "(none)"
	if st.ErrorDetails != nil {
		errDetails = fmt.Sprintf("Type: %s\nMessage: %s\nRetry count: %d",
			st.ErrorDetails.Type, st.ErrorDetails.Message, st.RetryCount)
	}

	test := "(none selected)"
	if st.CurrentTest != nil {
		test = fmt.Sprintf("Description: %s\nTest file: %s\nImpl file: %s",
			st.CurrentTest.Description, st.CurrentTest.TestFile, st.CurrentTest.ImplFile)
	}

	var extra string
	if len(st.PendingTests) > 0 {
		extra = fmt.Sprintf("\n## Pending Tests\n%s\n", strings.Join(st.PendingTests, "\n"))
	}

	return fmt.Sprintf(diagPrompt, st.Phase, errDetails, test, extra)
}
