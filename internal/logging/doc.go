// Package logging assembles structured slog loggers and formatting helpers used
// across rsvpsend.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so the dispatch driver and CLI tag
// log lines with run IDs, invite IDs, and outcomes in the same shape. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
