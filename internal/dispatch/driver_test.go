package dispatch_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"rsvpsend/internal/dispatch"
	"rsvpsend/internal/invite"
)

type stubSession struct {
	opened  []string
	awaits  int
	commits int

	readiness  func(call int) (dispatch.Readiness, error)
	openErr    error
	commitFunc func() error
}

func (s *stubSession) Open(_ context.Context, link string) error {
	s.opened = append(s.opened, link)
	return s.openErr
}

func (s *stubSession) AwaitReady(_ context.Context, _ time.Duration) (dispatch.Readiness, error) {
	s.awaits++
	if s.readiness != nil {
		return s.readiness(s.awaits)
	}
	return dispatch.Ready, nil
}

func (s *stubSession) Commit(context.Context) error {
	s.commits++
	if s.commitFunc != nil {
		return s.commitFunc()
	}
	return nil
}

type recordingSleeper struct {
	sleeps []time.Duration
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.sleeps = append(r.sleeps, d)
	return ctx.Err()
}

func newDriver(session dispatch.Session, sleeper dispatch.Sleeper, observer dispatch.Observer) *dispatch.Driver {
	opts := dispatch.DefaultOptions()
	opts.Sleeper = sleeper
	opts.Observer = observer
	opts.Clock = clockwork.NewFakeClock()
	return dispatch.New(session, opts)
}

func threeInvites() []invite.Invite {
	return []invite.Invite{
		{ID: "1", Name: "Sin Número", Phone: "n/a", Status: "pending", InviteLink: "https://x.test/r/1"},
		{ID: "2", Name: "Luis", Phone: "+504 3365-5484", Status: "pending", InviteLink: "https://x.test/r/2"},
		{ID: "3", Name: "Ana", Phone: "(504) 9999-0000", Status: "pending", InviteLink: "https://x.test/r/3"},
	}
}

func TestRunSkipTimeoutSuccess(t *testing.T) {
	session := &stubSession{
		readiness: func(call int) (dispatch.Readiness, error) {
			if call == 1 {
				return dispatch.TimedOut, nil
			}
			return dispatch.Ready, nil
		},
	}
	sleeper := &recordingSleeper{}
	var results []dispatch.Result
	driver := newDriver(session, sleeper, func(_ context.Context, r dispatch.Result) {
		results = append(results, r)
	})

	summary, err := driver.Run(context.Background(), threeInvites())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Sent != 1 || summary.Failed != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(session.opened) != 2 || session.awaits != 2 || session.commits != 1 {
		t.Fatalf("unexpected session calls: opened=%d awaits=%d commits=%d", len(session.opened), session.awaits, session.commits)
	}
	if !strings.Contains(session.opened[0], "phone=50433655484&") {
		t.Fatalf("first open should target item 2, got %q", session.opened[0])
	}
	if !strings.Contains(session.opened[1], "phone=50499990000&") {
		t.Fatalf("second open should target item 3, got %q", session.opened[1])
	}

	want := []time.Duration{5 * time.Second, 2 * time.Second}
	if len(sleeper.sleeps) != len(want) {
		t.Fatalf("unexpected sleeps %v", sleeper.sleeps)
	}
	for i := range want {
		if sleeper.sleeps[i] != want[i] {
			t.Fatalf("sleep %d = %v, want %v", i, sleeper.sleeps[i], want[i])
		}
	}

	wantOutcomes := []dispatch.Outcome{dispatch.OutcomeSkipped, dispatch.OutcomeTimedOut, dispatch.OutcomeSent}
	if len(results) != len(wantOutcomes) {
		t.Fatalf("expected %d results, got %d", len(wantOutcomes), len(results))
	}
	for i, r := range results {
		if r.Outcome != wantOutcomes[i] {
			t.Fatalf("result %d outcome = %s, want %s", i, r.Outcome, wantOutcomes[i])
		}
		if r.Index != i || r.Total != 3 {
			t.Fatalf("result %d has index %d/%d", i, r.Index, r.Total)
		}
	}
	if results[0].Touched {
		t.Fatal("skipped item must not touch the session")
	}
	if !results[1].Touched || !results[2].Touched {
		t.Fatal("attempted items should be marked touched")
	}
}

func TestRunBuildsDeepLinkWithRenderedMessage(t *testing.T) {
	session := &stubSession{}
	driver := newDriver(session, &recordingSleeper{}, nil)

	invites := []invite.Invite{{ID: "9", Name: "Ana", Phone: "+504 1111-2222", Status: "pending", InviteLink: "https://x.test/r/9"}}
	if _, err := driver.Run(context.Background(), invites); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(session.opened) != 1 {
		t.Fatalf("expected one open, got %d", len(session.opened))
	}
	parsed, err := url.Parse(session.opened[0])
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if parsed.Host != dispatch.DefaultProviderHost || parsed.Path != "/send" {
		t.Fatalf("unexpected link target %q", session.opened[0])
	}
	query := parsed.Query()
	if query.Get("phone") != "50411112222" {
		t.Fatalf("unexpected phone %q", query.Get("phone"))
	}
	text := query.Get("text")
	if !strings.Contains(text, "Ana") || !strings.Contains(text, "https://x.test/r/9") {
		t.Fatalf("rendered text missing fields: %q", text)
	}
}

func TestRunZeroEligibleLeavesSessionUntouched(t *testing.T) {
	session := &stubSession{}
	sleeper := &recordingSleeper{}
	driver := newDriver(session, sleeper, nil)

	summary, err := driver.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary != (dispatch.Summary{}) {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
	if len(session.opened) != 0 || session.awaits != 0 || session.commits != 0 {
		t.Fatal("session should not be touched")
	}
	if len(sleeper.sleeps) != 0 {
		t.Fatalf("no pacing expected, got %v", sleeper.sleeps)
	}
}

func TestRunContainsSessionFailures(t *testing.T) {
	tests := []struct {
		name    string
		session *stubSession
		want    dispatch.Outcome
	}{
		{
			name:    "open error",
			session: &stubSession{openErr: errors.New("navigation failed")},
			want:    dispatch.OutcomeCrashed,
		},
		{
			name: "await error",
			session: &stubSession{readiness: func(int) (dispatch.Readiness, error) {
				return dispatch.TimedOut, errors.New("browser closed")
			}},
			want: dispatch.OutcomeCrashed,
		},
		{
			name: "await deadline",
			session: &stubSession{readiness: func(int) (dispatch.Readiness, error) {
				return dispatch.TimedOut, context.DeadlineExceeded
			}},
			want: dispatch.OutcomeTimedOut,
		},
		{
			name:    "commit panic",
			session: &stubSession{commitFunc: func() error { panic("composer vanished") }},
			want:    dispatch.OutcomeCrashed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var results []dispatch.Result
			driver := newDriver(tt.session, &recordingSleeper{}, func(_ context.Context, r dispatch.Result) {
				results = append(results, r)
			})
			invites := threeInvites()[1:]

			summary, err := driver.Run(context.Background(), invites)
			if err != nil {
				t.Fatalf("Run returned error: %v", err)
			}
			if summary.Sent != 0 || summary.Failed != 2 {
				t.Fatalf("unexpected summary %+v", summary)
			}
			if len(tt.session.opened) != 2 {
				t.Fatalf("batch should continue after failure, opened %d", len(tt.session.opened))
			}
			for _, r := range results {
				if r.Outcome != tt.want {
					t.Fatalf("outcome = %s, want %s", r.Outcome, tt.want)
				}
				if tt.want == dispatch.OutcomeCrashed && r.Err == nil {
					t.Fatal("crashed result should carry the error")
				}
			}
		})
	}
}

func TestRunStopsBetweenItemsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	session := &stubSession{}
	driver := newDriver(session, &recordingSleeper{}, func(_ context.Context, r dispatch.Result) {
		if r.Index == 1 {
			cancel()
		}
	})

	summary, err := driver.Run(ctx, threeInvites())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.Sent != 1 || summary.Failed != 1 {
		t.Fatalf("expected partial summary, got %+v", summary)
	}
	if len(session.opened) != 1 {
		t.Fatalf("third item should not be opened, opened %d", len(session.opened))
	}
}

func TestRunReportsCancelDuringLastItemSettle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	session := &stubSession{}
	sleeper := dispatch.SleeperFunc(func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	})
	var observed []dispatch.Result
	driver := newDriver(session, sleeper, func(_ context.Context, r dispatch.Result) {
		observed = append(observed, r)
	})

	only := []invite.Invite{{ID: "9", Name: "Ana", Phone: "+504 3365-5484", Status: "pending"}}
	summary, err := driver.Run(ctx, only)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.Sent != 0 || summary.Failed != 1 {
		t.Fatalf("expected the interrupted item to count as failed, got %+v", summary)
	}
	if session.commits != 0 {
		t.Fatalf("commit should not run after cancel, got %d", session.commits)
	}
	if len(observed) != 1 || observed[0].Outcome != dispatch.OutcomeCrashed {
		t.Fatalf("expected one crashed result to be observed, got %+v", observed)
	}
}

func TestRunHonoursHourlyCap(t *testing.T) {
	session := &stubSession{}
	sleeper := &recordingSleeper{}
	opts := dispatch.DefaultOptions()
	opts.SettleDelay = 0
	opts.InterItemDelay = 0
	opts.MaxPerHour = 60
	opts.Sleeper = sleeper
	opts.Clock = clockwork.NewFakeClock()
	driver := dispatch.New(session, opts)

	invites := threeInvites()[1:]
	summary, err := driver.Run(context.Background(), invites)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Sent != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(sleeper.sleeps) != 1 || sleeper.sleeps[0] != time.Minute {
		t.Fatalf("expected a single one-minute cap wait, got %v", sleeper.sleeps)
	}
}
