package classify

import (
	"testing"

	"github.com/ntolman/tddorc/internal/model"
)

func TestIsProblem_TestFailureExpectedOnlyInRed(t *testing.T) {
	if IsProblem(model.ErrTestFailure, model.PhaseRed) {
		t.Fatal("TEST_FAILURE in RED should not be a problem")
	}
	if !IsProblem(model.ErrTestFailure, model.PhaseGreen) {
		t.Fatal("TEST_FAILURE in GREEN should be a problem")
	}
	if !IsProblem(model.ErrTestFailure, model.PhaseRefactor) {
		t.Fatal("TEST_FAILURE in REFACTOR should be a problem")
	}
}

func TestIsProblem_UnknownIsBenign(t *testing.T) {
	if IsProblem(model.ErrUnknown, model.PhaseGreen) {
		t.Fatal("UNKNOWN should be treated as benign, not a problem")
	}
}

func TestIsProblem_AlwaysProblemKinds(t *testing.T) {
	for _, kind := range []model.ErrorKind{
		model.ErrCompilation, model.ErrTimeout, model.ErrRateLimit,
		model.ErrNetwork, model.ErrUnexpectedPass,
	} {
		if !IsProblem(kind, model.PhaseRed) {
			t.Fatalf("%s should always be a problem", kind)
		}
	}
}
