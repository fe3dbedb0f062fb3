package config

import "rsvpsend/internal/message"

const (
	defaultConfigPath     = "~/.config/rsvpsend/config.toml"
	defaultInputFile      = "invites.csv"
	defaultStateDir       = "~/.local/share/rsvpsend"
	defaultLogDir         = "~/.local/share/rsvpsend/logs"
	defaultProviderHost   = "web.whatsapp.com"
	defaultSessionMode    = SessionAssisted
	defaultReadyTimeout   = 30
	defaultSettleDelay    = 2
	defaultInterItemDelay = 5
	defaultNotifyTimeout  = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	envNtfyTopic          = "RSVPSEND_NTFY_TOPIC"
)

// Session modes.
const (
	SessionAssisted = "assisted"
	SessionPreview  = "preview"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputFile: defaultInputFile,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		Provider: Provider{
			Host: defaultProviderHost,
		},
		Message: Message{
			Template: message.DefaultTemplateText,
		},
		Session: Session{
			Mode: defaultSessionMode,
		},
		Dispatch: Dispatch{
			ReadyTimeout:   defaultReadyTimeout,
			SettleDelay:    defaultSettleDelay,
			InterItemDelay: defaultInterItemDelay,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			RunStarted:     false,
			RunCompleted:   true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
