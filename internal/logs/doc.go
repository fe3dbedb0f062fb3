// Package logs reads the rsvpsend log file for the "rsvpsend logs" command.
//
// Last returns the final N lines with bounded memory, and Follow polls the
// file from an offset and streams new lines until the context ends. Polling
// goes through a clockwork clock so follow mode is testable without sleeps.
package logs
