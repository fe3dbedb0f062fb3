// Package invite models recipient records and the pure steps that prepare
// them for dispatch.
//
// Load reads a recipient CSV (tolerating byte-order marks) into Invite values
// in file order, failing the whole batch when a required column is missing.
// Pending selects the records still owed a reminder, and PhoneDigits derives
// the provider identifier from a free-form phone number.
package invite
