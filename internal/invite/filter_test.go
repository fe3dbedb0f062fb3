package invite_test

import (
	"reflect"
	"testing"

	"rsvpsend/internal/invite"
)

func TestPendingSelectsNormalizedStatus(t *testing.T) {
	in := []invite.Invite{
		{ID: "1", Status: "pending"},
		{ID: "2", Status: "confirmed"},
		{ID: "3", Status: "  Pending\t"},
		{ID: "4", Status: "PENDING"},
		{ID: "5", Status: "pending-ish"},
		{ID: "6", Status: ""},
		{ID: "7", Status: "rejected"},
	}
	snapshot := append([]invite.Invite(nil), in...)

	got := invite.Pending(in)
	var ids []string
	for _, inv := range got {
		ids = append(ids, inv.ID)
	}
	if want := []string{"1", "3", "4"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("unexpected pending ids: got %v want %v", ids, want)
	}
	if !reflect.DeepEqual(in, snapshot) {
		t.Fatal("Pending modified its input")
	}
	if again := invite.Pending(got); !reflect.DeepEqual(again, got) {
		t.Fatalf("Pending is not idempotent: %v vs %v", again, got)
	}
}

func TestPendingEmpty(t *testing.T) {
	if got := invite.Pending(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestExcludeIDs(t *testing.T) {
	in := []invite.Invite{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	got := invite.ExcludeIDs(in, map[string]struct{}{"2": {}})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected result: %v", got)
	}
	if all := invite.ExcludeIDs(in, nil); !reflect.DeepEqual(all, in) {
		t.Fatalf("nil set should keep everything: %v", all)
	}
}

func TestExcludeIDsKeepsBlankIDs(t *testing.T) {
	in := []invite.Invite{{ID: "", Name: "Ana"}, {ID: "4"}, {ID: " ", Name: "Luis"}}
	got := invite.ExcludeIDs(in, map[string]struct{}{"": {}, " ": {}, "4": {}})
	if len(got) != 2 || got[0].Name != "Ana" || got[1].Name != "Luis" {
		t.Fatalf("blank-id invites should never be excluded: %v", got)
	}
}
