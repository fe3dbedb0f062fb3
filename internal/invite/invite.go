package invite

import "strings"

// Column names required in the recipient CSV header.
const (
	ColumnID         = "id"
	ColumnName       = "name"
	ColumnPhone      = "phone"
	ColumnToken      = "token"
	ColumnStatus     = "status"
	ColumnInviteLink = "invite_link"
)

// RequiredColumns lists the header columns in canonical order.
var RequiredColumns = []string{
	ColumnID,
	ColumnName,
	ColumnPhone,
	ColumnToken,
	ColumnStatus,
	ColumnInviteLink,
}

// Status values written by the invite backend. Only StatusPending is
// eligible for a reminder.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
)

// Invite is one recipient row. Values are carried exactly as read.
type Invite struct {
	ID         string
	Name       string
	Phone      string
	Token      string
	Status     string
	InviteLink string
}

// IsPending reports whether the trimmed, lowercased status is "pending".
func (i Invite) IsPending() bool {
	return strings.ToLower(strings.TrimSpace(i.Status)) == StatusPending
}

// Digits returns the provider identifier derived from Phone.
func (i Invite) Digits() string {
	return PhoneDigits(i.Phone)
}
