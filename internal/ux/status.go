package ux

import (
	"fmt"

	"github.com/ntolman/tddorc/internal/gitfacade"
	"github.com/ntolman/tddorc/internal/model"
)

// RenderStatus prints the full status display for a project's current
// handoff state.
func RenderStatus(projectRoot string, st model.HandoffState) {
	fmt.Printf("%sProject:%s  %s\n", Bold, Reset, projectRoot)
	if st.Phase == model.PhaseComplete {
		fmt.Printf("%sState:%s    %s%scomplete%s\n", Bold, Reset, Green, Bold, Reset)
	} else {
		fmt.Printf("%sState:%s    cycle %d, %s%s%s\n",
			Bold, Reset, st.CycleNumber, Bold, st.Phase, Reset)
	}
	if st.CurrentTest != nil {
		fmt.Printf("%sTest:%s     %s\n", Bold, Reset, st.CurrentTest.Description)
		fmt.Printf("  %s%-10s%s %s\n", Dim, "test file", Reset, st.CurrentTest.TestFile)
		fmt.Printf("  %s%-10s%s %s\n", Dim, "impl file", Reset, st.CurrentTest.ImplFile)
	}
	if st.RetryCount > 0 && st.ErrorDetails != nil {
		fmt.Printf("%sRetry:%s    %s%d attempt(s), last error: %s (%s)%s\n",
			Bold, Reset, Yellow, st.RetryCount, st.ErrorDetails.Type, st.ErrorDetails.Message, Reset)
	}

	if len(st.CompletedTests) > 0 {
		fmt.Printf("\n%sCompleted:%s\n", Bold, Reset)
		for i, desc := range st.CompletedTests {
			fmt.Printf("  %s%d%s  %s✓%s %s\n", Dim, i+1, Reset, Green, Reset, desc)
		}
	}

	if len(st.PendingTests) > 0 {
		fmt.Printf("\n%sPending:%s\n", Bold, Reset)
		for i, desc := range st.PendingTests {
			marker := "  "
			if i == 0 && st.CurrentTest != nil && desc == st.CurrentTest.Description {
				marker = fmt.Sprintf("%s→%s ", Yellow, Reset)
			}
			fmt.Printf("  %s%s%d%s  %s\n", marker, Dim, i+1, Reset, desc)
		}
	}
	fmt.Println()
}

// RenderHistory prints the commit/handoff-note history, newest first.
func RenderHistory(entries []gitfacade.Entry) {
	if len(entries) == 0 {
		fmt.Printf("%s(no recorded cycles)%s\n", Dim, Reset)
		return
	}
	fmt.Printf("%sCommit%s    %sCycle%s  %sPhase%s    %sTest%s\n", Bold, Reset, Bold, Reset, Bold, Reset, Bold, Reset)
	for _, e := range entries {
		desc := ""
		if e.State.CurrentTest != nil {
			desc = e.State.CurrentTest.Description
		}
		fmt.Printf("%s  %-6d  %-9s %s\n", shortSHA(e.Commit), e.State.CycleNumber, e.State.Phase, desc)
	}
}
