package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"rsvpsend/internal/dispatch"
	"rsvpsend/internal/invite"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Input file", statusError, "missing", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Input file:", "[ERROR] missing")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Ledger", statusOK, "ok", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestRenderProgressLine(t *testing.T) {
	base := dispatch.Result{
		Index:  1,
		Total:  4,
		Invite: invite.Invite{Name: "Ana", Phone: "+504 1"},
	}

	tests := []struct {
		name    string
		outcome dispatch.Outcome
		err     error
		want    string
	}{
		{"sent", dispatch.OutcomeSent, nil, "[2/4] Ana (+504 1): [OK] sent"},
		{"skipped", dispatch.OutcomeSkipped, nil, "[2/4] Ana (+504 1): [WARN] skipped (no digits in phone)"},
		{"timed out", dispatch.OutcomeTimedOut, nil, "[2/4] Ana (+504 1): [WARN] timed out waiting for the chat"},
		{"crashed", dispatch.OutcomeCrashed, errors.New("boom"), "[2/4] Ana (+504 1): [ERROR] failed: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := base
			result.Outcome = tt.outcome
			result.Err = tt.err
			if got := renderProgressLine(result, false); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSummaryLines(t *testing.T) {
	lines := renderSummaryLines(dispatch.Summary{Sent: 3, Failed: 2})
	if len(lines) != 2 || lines[0] != "Sent: 3" || lines[1] != "Failed: 2" {
		t.Fatalf("unexpected summary lines %v", lines)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
