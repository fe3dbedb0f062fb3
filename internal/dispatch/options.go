package dispatch

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"rsvpsend/internal/logging"
	"rsvpsend/internal/message"
)

// Default pacing values.
const (
	DefaultReadyTimeout   = 30 * time.Second
	DefaultSettleDelay    = 2 * time.Second
	DefaultInterItemDelay = 5 * time.Second
	DefaultProviderHost   = "web.whatsapp.com"
)

// Options configures a Driver. A zero SettleDelay or InterItemDelay disables
// that pause; start from DefaultOptions to get the standard pacing.
type Options struct {
	ReadyTimeout   time.Duration
	SettleDelay    time.Duration
	InterItemDelay time.Duration
	Template       *message.Template
	ProviderHost   string
	// MaxPerHour caps opened links per hour. Zero disables the cap.
	MaxPerHour int
	Clock      clockwork.Clock
	Sleeper    Sleeper
	Observer   Observer
	Logger     *slog.Logger
}

// DefaultOptions returns the standard pacing and the default template.
func DefaultOptions() Options {
	return Options{
		ReadyTimeout:   DefaultReadyTimeout,
		SettleDelay:    DefaultSettleDelay,
		InterItemDelay: DefaultInterItemDelay,
		Template:       message.DefaultTemplate(),
		ProviderHost:   DefaultProviderHost,
	}
}

func (o Options) withDefaults() Options {
	if o.ReadyTimeout <= 0 {
		o.ReadyTimeout = DefaultReadyTimeout
	}
	if o.SettleDelay < 0 {
		o.SettleDelay = 0
	}
	if o.InterItemDelay < 0 {
		o.InterItemDelay = 0
	}
	if o.Template == nil {
		o.Template = message.DefaultTemplate()
	}
	if o.ProviderHost == "" {
		o.ProviderHost = DefaultProviderHost
	}
	if o.MaxPerHour < 0 {
		o.MaxPerHour = 0
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Sleeper == nil {
		o.Sleeper = ClockSleeper(o.Clock)
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	return o
}
