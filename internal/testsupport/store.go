package testsupport

import (
	"context"
	"testing"

	"rsvpsend/internal/config"
	"rsvpsend/internal/ledger"
)

// MustOpenLedger opens a ledger.Store for tests and registers cleanup.
func MustOpenLedger(t testing.TB, cfg *config.Config) *ledger.Store {
	t.Helper()

	store, err := ledger.Open(context.Background(), cfg.LedgerPath())
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// BeginRun starts a run for tests using the provided store.
func BeginRun(t testing.TB, store *ledger.Store, mode string, eligible int) *ledger.Run {
	t.Helper()

	run, err := store.BeginRun(context.Background(), "invites.csv", mode, eligible)
	if err != nil {
		t.Fatalf("store.BeginRun: %v", err)
	}
	return run
}
