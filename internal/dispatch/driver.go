package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"rsvpsend/internal/invite"
	"rsvpsend/internal/logging"
	"rsvpsend/internal/message"
)

// Driver sends one reminder per invite through a Session.
type Driver struct {
	session Session
	opts    Options
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New constructs a driver for the given session.
func New(session Session, opts Options) *Driver {
	opts = opts.withDefaults()
	d := &Driver{
		session: session,
		opts:    opts,
		logger:  logging.NewComponentLogger(opts.Logger, "dispatch"),
	}
	if opts.MaxPerHour > 0 {
		d.limiter = rate.NewLimiter(rate.Every(time.Hour/time.Duration(opts.MaxPerHour)), 1)
	}
	return d
}

// Run processes invites strictly in order and returns the summary. The
// context is checked before and after every item; on cancellation the
// partial summary is returned together with ctx.Err().
func (d *Driver) Run(ctx context.Context, invites []invite.Invite) (Summary, error) {
	var summary Summary
	total := len(invites)
	if total == 0 {
		d.logger.Info("no eligible invites")
		return summary, nil
	}

	for i, inv := range invites {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := d.processItem(ctx, i, total, inv)
		if err != nil {
			// Pacing was interrupted before the item reached the session.
			return summary, err
		}
		summary.add(result.Outcome)
		d.logResult(result)
		if d.opts.Observer != nil {
			d.opts.Observer(ctx, result)
		}
		if err := ctx.Err(); err != nil {
			// Interrupted mid-item; the item is already counted.
			return summary, err
		}

		if i == total-1 || !result.Touched {
			continue
		}
		if err := d.sleep(ctx, d.opts.InterItemDelay); err != nil {
			return summary, err
		}
	}

	d.logger.Info("dispatch complete",
		logging.Int("sent", summary.Sent),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

// processItem resolves one invite. A non-nil error means the context ended
// while waiting for the hourly cap and the item was not attempted.
func (d *Driver) processItem(ctx context.Context, index, total int, inv invite.Invite) (result Result, err error) {
	start := d.opts.Clock.Now()
	result = Result{
		Index:  index,
		Total:  total,
		Invite: inv,
		Digits: inv.Digits(),
	}
	defer func() {
		result.Elapsed = d.opts.Clock.Since(start)
	}()

	if result.Digits == "" {
		result.Outcome = OutcomeSkipped
		return result, nil
	}

	if err := d.waitForSlot(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		result.Outcome = OutcomeCrashed
		result.Err = err
		return result, nil
	}

	outcome, stepErr := d.attempt(ctx, &result)
	result.Outcome = outcome
	result.Err = stepErr
	return result, nil
}

// attempt runs the Opened → Ready → Committed steps with panics contained.
func (d *Driver) attempt(ctx context.Context, result *Result) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomeCrashed
			err = fmt.Errorf("session panic: %v", r)
		}
	}()

	text := d.opts.Template.Render(result.Invite.Name, result.Invite.InviteLink)
	result.Link = message.DeepLink(d.opts.ProviderHost, result.Digits, message.Encode(text))

	result.Touched = true
	if err := d.session.Open(ctx, result.Link); err != nil {
		return OutcomeCrashed, fmt.Errorf("open link: %w", err)
	}

	readiness, err := d.session.AwaitReady(ctx, d.opts.ReadyTimeout)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return OutcomeTimedOut, nil
		}
		return OutcomeCrashed, fmt.Errorf("await ready: %w", err)
	}
	if readiness != Ready {
		return OutcomeTimedOut, nil
	}

	if err := d.sleep(ctx, d.opts.SettleDelay); err != nil {
		return OutcomeCrashed, fmt.Errorf("settle: %w", err)
	}

	if err := d.session.Commit(ctx); err != nil {
		return OutcomeCrashed, fmt.Errorf("commit: %w", err)
	}
	return OutcomeSent, nil
}

func (d *Driver) waitForSlot(ctx context.Context) error {
	if d.limiter == nil {
		return nil
	}
	now := d.opts.Clock.Now()
	reservation := d.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return errors.New("hourly send cap cannot be satisfied")
	}
	delay := reservation.DelayFrom(now)
	if delay <= 0 {
		return nil
	}
	d.logger.Info("hourly send cap reached; waiting", logging.Duration("delay", delay))
	if err := d.sleep(ctx, delay); err != nil {
		reservation.CancelAt(d.opts.Clock.Now())
		return err
	}
	return nil
}

func (d *Driver) sleep(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return nil
	}
	return d.opts.Sleeper.Sleep(ctx, duration)
}

func (d *Driver) logResult(result Result) {
	attrs := []logging.Attr{
		logging.String(logging.FieldInviteID, result.Invite.ID),
		logging.String(logging.FieldName, result.Invite.Name),
		logging.String(logging.FieldPhone, result.Invite.Phone),
		logging.String(logging.FieldOutcome, string(result.Outcome)),
		logging.Int("index", result.Index+1),
		logging.Int("total", result.Total),
	}
	switch result.Outcome {
	case OutcomeSent:
		d.logger.Info("reminder sent", logging.Args(attrs...)...)
	case OutcomeSkipped:
		logging.WarnWithContext(d.logger, "invite skipped", "invite_skipped",
			"phone has no digits; fix the phone column", attrs...)
	case OutcomeTimedOut:
		attrs = append(attrs, logging.Duration("timeout", d.opts.ReadyTimeout))
		logging.WarnWithContext(d.logger, "composer not ready", "ready_timeout",
			"check the session is signed in and the number uses the app", attrs...)
	default:
		attrs = append(attrs, logging.Error(result.Err))
		d.logger.Error("invite failed", logging.Args(attrs...)...)
	}
}
