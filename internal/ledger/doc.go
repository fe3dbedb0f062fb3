// Package ledger persists run and delivery outcomes in SQLite.
//
// Every resolved invite is written as soon as its outcome is known, so an
// interrupted run still leaves an accurate record of who was contacted. The
// ledger never rewrites the input CSV; callers use DeliveredInviteIDs to skip
// already-sent invites when resuming. The schema carries a version row and a
// mismatch asks the operator to delete the database.
package ledger
