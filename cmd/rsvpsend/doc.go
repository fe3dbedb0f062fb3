// Package main hosts the rsvpsend CLI entrypoint and command graph.
//
// The Cobra-based command tree loads the recipient CSV, drives the dispatch
// loop through an assisted or preview session, records outcomes in the
// ledger, and exposes run history, configuration scaffolding, and a
// notification check. It centralizes configuration resolution and logging
// setup so subcommands can focus on operator experience instead of wiring.
//
// Keep this package lean: add new behaviour to the internal packages first,
// then surface it through dedicated commands or flags here.
package main
