package prompt

import (
	"fmt"
	"strings"

	"github.com/ntolman/tddorc/internal/model"
)

// RetryInfo carries the "Previous Attempt Failed" context appended to a
// retried phase's prompt, per spec.md §4.4.
type RetryInfo struct {
	Kind       model.ErrorKind
	RetryCount int
	MaxRetries int
	ErrorText  string
}

// Build assembles the user prompt for phase given the current handoff
// state and the originating feature request. retry is nil on a first
// attempt.
func Build(phase model.Phase, state model.HandoffState, featureRequest string, retry *RetryInfo) string {
	var b strings.Builder

	switch phase {
	case model.PhasePlan:
		b.WriteString("Feature request: " + featureRequest + "\n\n")
		if len(state.CompletedTests) > 0 {
			b.WriteString("Tests already completed:\n")
			for _, d := range state.CompletedTests {
				b.WriteString("- " + d + "\n")
			}
			b.WriteString("\n")
		}
		b.WriteString("Read test-list.md (creating it if absent) and select the next pending test.")
	case model.PhaseRed:
		writeTestCase(&b, state.CurrentTest)
		b.WriteString("\n\nWrite exactly one new failing test for this case, then run the full suite.")
	case model.PhaseGreen:
		writeTestCase(&b, state.CurrentTest)
		b.WriteString("\n\nWrite the minimum implementation to make this test pass, then run the full suite.")
	case model.PhaseRefactor:
		writeTestCase(&b, state.CurrentTest)
		b.WriteString("\n\nClean up the code just written for this test without changing behavior, then run the full suite and update test-list.md.")
	default:
		b.WriteString("No further action is required; the workflow is complete.")
	}

	if retry != nil {
		b.WriteString("\n\n")
		b.WriteString(retryBlock(phase, *retry))
	}

	return b.String()
}

func writeTestCase(b *strings.Builder, tc *model.TestCase) {
	if tc == nil {
		b.WriteString("No test case was provided.")
		return
	}
	fmt.Fprintf(b, "Test case:\n- description: %s\n- testFile: %s\n- implFile: %s", tc.Description, tc.TestFile, tc.ImplFile)
}

// retryBlock renders the "Previous Attempt Failed" section. Phase-specific
// guidance is only defined for UNEXPECTED_PASS in RED, per spec.md §4.4;
// other kinds get the kind's generic description.
func retryBlock(phase model.Phase, r RetryInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Previous attempt failed (retry %d of %d): %s\n", r.RetryCount, r.MaxRetries, r.Kind.Description())
	if r.ErrorText != "" {
		b.WriteString("Error detail:\n" + r.ErrorText + "\n")
	}
	if guidance := phaseGuidance(phase, r.Kind); guidance != "" {
		b.WriteString(guidance)
	}
	return b.String()
}

func phaseGuidance(phase model.Phase, kind model.ErrorKind) string {
	if phase == model.PhaseRed && kind == model.ErrUnexpectedPass {
		return "Add a proper assertion that fails until the feature is implemented; a test that passes trivially is not acceptable."
	}
	return ""
}
