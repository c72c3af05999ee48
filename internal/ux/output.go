package ux

import (
	"fmt"
	"time"

	"github.com/ntolman/tddorc/internal/classify"
	"github.com/ntolman/tddorc/internal/model"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// PhaseHeader prints a timestamped header for the start of a phase.
func PhaseHeader(cycle int, phase model.Phase, testDescription string) {
	fmt.Printf("\n%s[%s]%s %s══════════════════════════════════════%s\n",
		Dim, timestamp(), Reset, Cyan, Reset)
	desc := ""
	if testDescription != "" {
		desc = fmt.Sprintf(" — %s", testDescription)
	}
	fmt.Printf("%s[%s]%s  %sCycle %d: %s%s%s\n",
		Dim, timestamp(), Reset, Bold, cycle, phase, desc, Reset)
	fmt.Printf("%s[%s]%s %s══════════════════════════════════════%s\n",
		Dim, timestamp(), Reset, Cyan, Reset)
}

// PhaseComplete prints a phase completion message.
func PhaseComplete(phase model.Phase, duration time.Duration) {
	m := int(duration.Minutes())
	s := int(duration.Seconds()) % 60
	fmt.Printf("%s[%s]%s  %s✓ %s complete (%dm %02ds)%s\n",
		Dim, timestamp(), Reset, Green, phase, m, s, Reset)
}

// PhaseFail prints a phase failure message.
func PhaseFail(phase model.Phase, kind model.ErrorKind, errMsg string) {
	fmt.Printf("%s[%s]%s  %s✗ %s failed (%s): %s%s\n",
		Dim, timestamp(), Reset, Red, phase, kind, errMsg, Reset)
}

// ResumeHint prints a resume command hint.
func ResumeHint(projectRoot string) {
	fmt.Printf("\n%sResume:%s tddorc resume -p %s\n", Yellow, Reset, projectRoot)
}

// Retry prints a retry message describing which recovery action fired.
func Retry(phase model.Phase, kind model.ErrorKind, action classify.Action, attempt, max int) {
	fmt.Printf("%s[%s]%s  %s↺ %s classified as %s, applying %s (attempt %d/%d)%s\n",
		Dim, timestamp(), Reset, Yellow, phase, kind, action, attempt, max, Reset)
}

// Rollback prints a rollback-and-retry message.
func Rollback(phase model.Phase, commit string) {
	fmt.Printf("%s[%s]%s  %s↺ rolling back %s to %s and retrying%s\n",
		Dim, timestamp(), Reset, Yellow, phase, shortSHA(commit), Reset)
}

// ToolUse prints an inline tool call.
func ToolUse(name, input string) {
	summary := input
	if len(summary) > 80 {
		summary = summary[:77] + "..."
	}
	fmt.Printf("  %s⚡ %s%s %s\n", Cyan, name, Reset, summary)
}

// CycleComplete prints a cycle completion summary.
func CycleComplete(result model.CycleResult) {
	fmt.Printf("%s[%s]%s  %s✓ cycle %d complete: %s (%d commits)%s\n",
		Dim, timestamp(), Reset, Green, result.CycleNumber, result.TestDescription, len(result.CommitIDs), Reset)
}

// Aborted prints a workflow abort message.
func Aborted(errMsg string) {
	fmt.Printf("\n%s[%s]%s  %s✗ workflow aborted: %s%s\n\n",
		Dim, timestamp(), Reset, Red, errMsg, Reset)
}

// Success prints a final workflow success message.
func Success(totalTests int) {
	fmt.Printf("\n%s[%s]%s  %s%s══ all %d tests complete ══%s\n\n",
		Dim, timestamp(), Reset, Bold, Green, totalTests, Reset)
}

func shortSHA(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
