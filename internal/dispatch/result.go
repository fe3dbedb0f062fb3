package dispatch

import (
	"context"
	"time"

	"rsvpsend/internal/invite"
)

// Outcome is the terminal state of one item.
type Outcome string

const (
	OutcomeSent     Outcome = "sent"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeTimedOut Outcome = "timed_out"
	OutcomeCrashed  Outcome = "crashed"
)

// Failed reports whether the outcome counts against the run.
func (o Outcome) Failed() bool {
	return o != OutcomeSent
}

// Summary counts resolved items. Every processed item increments exactly one
// counter.
type Summary struct {
	Sent   int
	Failed int
}

// Total returns the number of items resolved.
func (s Summary) Total() int {
	return s.Sent + s.Failed
}

func (s *Summary) add(outcome Outcome) {
	if outcome == OutcomeSent {
		s.Sent++
		return
	}
	s.Failed++
}

// Result describes how a single invite was resolved.
type Result struct {
	Index   int
	Total   int
	Invite  invite.Invite
	Digits  string
	Link    string
	Outcome Outcome
	Err     error
	// Touched is true once the session was asked to open the link.
	Touched bool
	Elapsed time.Duration
}

// Observer receives every resolved item in order. Observers run on the driver
// goroutine and should return quickly.
type Observer func(ctx context.Context, result Result)
