package backoff

import (
	"testing"
	"time"
)

func TestDelay_Schedule(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 4 * time.Second}, // clamped
		{100, 4 * time.Second},
	}
	for _, c := range cases {
		if got := Delay(Schedule, c.attempt); got != c.want {
			t.Errorf("Delay(attempt=%d) = %v, want %v", c.attempt, got, c.want)
		}
	}
}
