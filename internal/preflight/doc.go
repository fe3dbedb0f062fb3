// Package preflight provides readiness checks for the paths and services
// rsvpsend depends on.
//
// The CLI "rsvpsend check" command runs them before an operator starts a
// long send session: the state and log directories must be writable, the
// recipient CSV must load with every required column, and the ntfy server
// must answer when notifications are configured.
//
// Each check is gated by its config value; unset optional features pass as
// "disabled".
package preflight
