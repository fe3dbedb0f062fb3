package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"rsvpsend/internal/dispatch"
	"rsvpsend/internal/operator"
)

// Assisted relies on the operator to open each link and press send.
type Assisted struct {
	confirmer operator.Confirmer
	out       io.Writer
	current   string
}

// NewAssisted returns a session that prompts on w and waits on confirmer.
func NewAssisted(confirmer operator.Confirmer, w io.Writer) *Assisted {
	if w == nil {
		w = io.Discard
	}
	return &Assisted{confirmer: confirmer, out: w}
}

func (a *Assisted) Open(_ context.Context, url string) error {
	if a.confirmer == nil {
		return errors.New("assisted session requires an operator confirmer")
	}
	a.current = url
	fmt.Fprintf(a.out, "  open in the signed-in client:\n  %s\n", url)
	return nil
}

// AwaitReady asks the operator to confirm the composer shows the pre-filled
// message. No confirmation within timeout reports TimedOut.
func (a *Assisted) AwaitReady(ctx context.Context, timeout time.Duration) (dispatch.Readiness, error) {
	if a.current == "" {
		return dispatch.TimedOut, errors.New("await ready called before open")
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prompt := fmt.Sprintf("  press ENTER once the chat shows the message (%s limit): ", timeout)
	err := a.confirmer.Confirm(waitCtx, prompt)
	switch {
	case err == nil:
		return dispatch.Ready, nil
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		return dispatch.TimedOut, nil
	default:
		return dispatch.TimedOut, fmt.Errorf("wait for operator: %w", err)
	}
}

func (a *Assisted) Commit(ctx context.Context) error {
	if a.current == "" {
		return errors.New("commit called before open")
	}
	a.current = ""
	if err := a.confirmer.Confirm(ctx, "  press send in the chat, then ENTER here: "); err != nil {
		return fmt.Errorf("confirm send: %w", err)
	}
	return nil
}
