package model

import "time"

// CycleResult summarizes one PLAN/RED/GREEN/REFACTOR traversal.
type CycleResult struct {
	CycleNumber     int
	TestDescription string
	Success         bool
	CommitIDs       []string
	Error           *string
}

// WorkflowResult is the final report for a full `run`/`resume` invocation.
type WorkflowResult struct {
	FeatureRequest string
	Success        bool
	Cycles         []CycleResult
	TotalTests     int
	StartedAt      time.Time
	EndedAt        time.Time
	Final          HandoffState
	Error          *string
}
