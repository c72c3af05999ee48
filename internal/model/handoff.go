package model

// HandoffState is the sole cross-phase channel: it is written as a JSON
// note on the commit an agent produces and read back by the orchestrator
// before the next phase starts. Instances are treated as immutable values;
// every transition produces a new HandoffState rather than mutating one in
// place.
type HandoffState struct {
	Phase          Phase         `json:"phase"`
	NextPhase      Phase         `json:"nextPhase"`
	CycleNumber    int           `json:"cycleNumber"`
	CurrentTest    *TestCase     `json:"currentTest"`
	CompletedTests []string      `json:"completedTests"`
	PendingTests   []string      `json:"pendingTests"`
	TestResult     *TestResult   `json:"testResult"`
	Error          *string       `json:"error"`
	ErrorDetails   *ErrorDetails `json:"errorDetails"`
	RetryCount     int           `json:"retryCount"`
}

// NewInitial builds the starting state for a fresh workflow run. NextPhase
// is PhasePlan: nothing has run yet, so the next (and first) phase to
// execute is the planner. This mirrors how a recorded note's NextPhase
// names the phase to run next, so the orchestrator can always seed its
// current phase from NextPhase, fresh or resumed alike.
func NewInitial(pending []string) HandoffState {
	return HandoffState{
		Phase:          PhasePlan,
		NextPhase:      PhasePlan,
		CycleNumber:    1,
		CompletedTests: []string{},
		PendingTests:   append([]string(nil), pending...),
	}
}

// Clone returns a deep, defensive copy so callers can mutate the result
// without affecting the original.
func (s HandoffState) Clone() HandoffState {
	c := s
	c.CompletedTests = append([]string(nil), s.CompletedTests...)
	c.PendingTests = append([]string(nil), s.PendingTests...)
	if s.CurrentTest != nil {
		tc := *s.CurrentTest
		c.CurrentTest = &tc
	}
	if s.TestResult != nil {
		tr := *s.TestResult
		c.TestResult = &tr
	}
	if s.Error != nil {
		e := *s.Error
		c.Error = &e
	}
	if s.ErrorDetails != nil {
		ed := *s.ErrorDetails
		c.ErrorDetails = &ed
	}
	return c
}

// ClearError resets retry bookkeeping on a successful phase, per the
// invariant that retryCount is reset to 0 and error/errorDetails cleared.
func (s HandoffState) ClearError() HandoffState {
	c := s.Clone()
	c.RetryCount = 0
	c.Error = nil
	c.ErrorDetails = nil
	return c
}

// Equal reports field-by-field value equality, used by tests asserting
// round-trip and transition correctness.
func (s HandoffState) Equal(o HandoffState) bool {
	if s.Phase != o.Phase || s.NextPhase != o.NextPhase || s.CycleNumber != o.CycleNumber ||
		s.RetryCount != o.RetryCount {
		return false
	}
	if !stringSliceEqual(s.CompletedTests, o.CompletedTests) {
		return false
	}
	if !stringSliceEqual(s.PendingTests, o.PendingTests) {
		return false
	}
	if !testCaseEqual(s.CurrentTest, o.CurrentTest) {
		return false
	}
	if !testResultEqual(s.TestResult, o.TestResult) {
		return false
	}
	if !stringPtrEqual(s.Error, o.Error) {
		return false
	}
	if !errorDetailsEqual(s.ErrorDetails, o.ErrorDetails) {
		return false
	}
	return true
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testCaseEqual(a, b *TestCase) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func testResultEqual(a, b *TestResult) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func errorDetailsEqual(a, b *ErrorDetails) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
