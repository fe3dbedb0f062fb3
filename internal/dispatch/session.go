package dispatch

import (
	"context"
	"time"
)

// Readiness is the result of waiting for the composer to accept a send.
type Readiness int

const (
	// TimedOut means the ready signal did not arrive within the timeout.
	TimedOut Readiness = iota
	// Ready means the composer is prepared to accept the commit action.
	Ready
)

func (r Readiness) String() string {
	switch r {
	case Ready:
		return "ready"
	default:
		return "timed_out"
	}
}

// Session is the single stateful surface the driver navigates. Calls are
// strictly sequential; implementations need no locking.
type Session interface {
	// Open navigates to the deep link. It does not report delivery.
	Open(ctx context.Context, url string) error
	// AwaitReady blocks until the composer is ready or timeout elapses.
	AwaitReady(ctx context.Context, timeout time.Duration) (Readiness, error)
	// Commit presses send on the pre-filled composer.
	Commit(ctx context.Context) error
}
