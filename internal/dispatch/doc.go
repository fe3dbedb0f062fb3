// Package dispatch drives one delivery attempt per eligible invite through an
// injected session capability.
//
// Each invite moves through a small state machine: the phone is normalized
// (empty digits skip the item), the deep link is opened, the driver waits a
// bounded time for the composer to become ready, settles, and commits. Timeouts,
// session errors, and panics are contained at the item boundary and counted as
// failures so one bad record never aborts the batch. Pacing goes through a
// Sleeper so tests run the full loop on a fake clock.
package dispatch
