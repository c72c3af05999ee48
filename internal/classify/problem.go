package classify

import "github.com/ntolman/tddorc/internal/model"

// IsProblem reports whether kind represents an actual problem worth
// recovering from for the given phase, as opposed to an ambiguous or
// benign classification the orchestrator should treat as ordinary
// success. A RED commit whose new test fails classifies as TEST_FAILURE,
// which is the expected outcome of RED and not a problem; everywhere
// else TEST_FAILURE means a phase broke something and must be rolled
// back. UNKNOWN carries no positive evidence of failure (spec.md §9
// notes an unrecognized success banner is indistinguishable from no
// signal at all) so it is treated as benign here, even though Recover
// still maps it to RETRY_WITH_CONTEXT for the cases where a problem is
// already known to exist (a phase invocation error, or a phase that
// produced no commit at all).
func IsProblem(kind model.ErrorKind, phase model.Phase) bool {
	switch kind {
	case model.ErrTestFailure:
		return phase != model.PhaseRed
	case model.ErrUnknown:
		return false
	default:
		return true
	}
}
