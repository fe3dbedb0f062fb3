// Package notifications publishes run milestones to ntfy.
//
// The service posts plain-text messages to the configured topic URL with
// Title, Tags, and Priority headers, honours the per-event toggles in the
// [notifications] config section, and degrades to a no-op when no topic is
// configured. Callers treat delivery failures as log-worthy, never fatal.
package notifications
