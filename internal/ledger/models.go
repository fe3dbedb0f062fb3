package ledger

import "time"

// Outcome values recorded per delivery.
const (
	OutcomeSent     = "sent"
	OutcomeSkipped  = "skipped"
	OutcomeTimedOut = "timed_out"
	OutcomeCrashed  = "crashed"
)

// ModePreview marks dry runs; their deliveries never count as sent when
// resuming.
const ModePreview = "preview"

// Run is one invocation of the dispatch loop.
type Run struct {
	ID          string
	InputPath   string
	Mode        string
	StartedAt   time.Time
	FinishedAt  time.Time
	Eligible    int
	Sent        int
	Failed      int
	Interrupted bool
}

// Finished reports whether the run recorded its completion.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Delivery is the resolved outcome of one invite within a run.
type Delivery struct {
	ID           int64
	RunID        string
	InviteID     string
	Name         string
	Phone        string
	Digits       string
	Outcome      string
	ErrorMessage string
	CreatedAt    time.Time
}
