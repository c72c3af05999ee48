package classify

import (
	"strings"

	"github.com/ntolman/tddorc/internal/model"
)

// Action is the recovery action the orchestrator takes in response to a
// classified error.
type Action string

const (
	ActionContinue        Action = "CONTINUE"
	ActionRetryWithContext Action = "RETRY_WITH_CONTEXT"
	ActionRollbackAndRetry Action = "ROLLBACK_AND_RETRY"
	ActionWaitAndRetry     Action = "WAIT_AND_RETRY"
	ActionAbort            Action = "ABORT"
)

// Recover maps {kind, phase, retryCount} to a recovery action per
// spec.md §4.6. maxRetries is checked first: once retryCount has reached
// it, every kind aborts regardless of phase.
func Recover(kind model.ErrorKind, phase model.Phase, retryCount, maxRetries int) Action {
	if retryCount >= maxRetries {
		return ActionAbort
	}

	switch kind {
	case model.ErrCompilation:
		return ActionRetryWithContext
	case model.ErrTestFailure:
		if phase == model.PhaseRed {
			return ActionContinue
		}
		return ActionRollbackAndRetry
	case model.ErrUnexpectedPass:
		return ActionRetryWithContext
	case model.ErrTimeout, model.ErrNetwork, model.ErrRateLimit:
		return ActionWaitAndRetry
	default:
		return ActionRetryWithContext
	}
}

// maxExtractLen bounds the truncated error extract stored on a handoff
// note, per spec.md §4.6.
const maxExtractLen = 500

var extractKeywords = []string{"error", "failure", "exception"}

// Extract pulls a short, informative slice out of raw phase output to
// store as HandoffState.Error: lines mentioning error/failure/Exception
// take priority, falling back to the last few non-empty lines when none
// match. The result is truncated to maxExtractLen runes.
func Extract(output string) string {
	lines := strings.Split(output, "\n")

	var hits []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, kw := range extractKeywords {
			if strings.Contains(lower, kw) {
				hits = append(hits, trimmed)
				break
			}
		}
	}

	if len(hits) == 0 {
		var nonEmpty []string
		for _, line := range lines {
			if t := strings.TrimSpace(line); t != "" {
				nonEmpty = append(nonEmpty, t)
			}
		}
		if len(nonEmpty) > 5 {
			nonEmpty = nonEmpty[len(nonEmpty)-5:]
		}
		hits = nonEmpty
	}

	joined := strings.Join(hits, "\n")
	return truncate(joined, maxExtractLen)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
