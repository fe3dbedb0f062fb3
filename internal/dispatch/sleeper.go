package dispatch

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Sleeper pauses the driver between steps.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// ClockSleeper returns a Sleeper that waits on the given clock and honours
// context cancellation.
func ClockSleeper(clock clockwork.Clock) Sleeper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return SleeperFunc(func(ctx context.Context, d time.Duration) error {
		if d <= 0 {
			return ctx.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(d):
			return nil
		}
	})
}
