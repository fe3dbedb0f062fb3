package invite

import "strings"

// Pending returns the invites whose status is pending, in input order.
// The input slice is not modified.
func Pending(invites []Invite) []Invite {
	out := make([]Invite, 0, len(invites))
	for _, inv := range invites {
		if inv.IsPending() {
			out = append(out, inv)
		}
	}
	return out
}

// ExcludeIDs returns invites whose ID is not in ids, in input order.
// Invites with a blank ID are always kept.
func ExcludeIDs(invites []Invite, ids map[string]struct{}) []Invite {
	out := make([]Invite, 0, len(invites))
	for _, inv := range invites {
		if strings.TrimSpace(inv.ID) == "" {
			out = append(out, inv)
			continue
		}
		if _, skip := ids[inv.ID]; skip {
			continue
		}
		out = append(out, inv)
	}
	return out
}
