// Package config loads, normalizes, and validates rsvpsend configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// RSVPSEND_NTFY_TOPIC. The Config type centralizes every knob the CLI and the
// dispatch driver need: where the recipient CSV and ledger live, which
// provider host the deep links target, the message template, and the pacing
// between recipients.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
