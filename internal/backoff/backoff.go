// Package backoff implements the fixed exponential-ish retry schedule
// spec.md §4.6 requires for WAIT_AND_RETRY recovery: 1s, 2s, 4s, clamped
// to the last configured value for any retry beyond the schedule length.
// No third-party backoff library is wired here — none of the full
// example repos in the retrieved pack import one, so this stays a small,
// explicit, easily-tested helper rather than a generic dependency.
package backoff

import "time"

// Schedule is the default WAIT_AND_RETRY delay sequence.
var Schedule = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// Delay returns the delay before the attempt-th retry (1-indexed),
// clamped to the last entry in schedule once attempt exceeds its length.
func Delay(schedule []time.Duration, attempt int) time.Duration {
	if len(schedule) == 0 {
		return 0
	}
	idx := attempt - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(schedule) {
		idx = len(schedule) - 1
	}
	return schedule[idx]
}
