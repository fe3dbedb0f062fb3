package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"rsvpsend/internal/dispatch"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	return paint(base, kind, colorize)
}

// renderProgressLine formats one resolved invite as
// "[i/n] name (phone): [STATUS] outcome".
func renderProgressLine(result dispatch.Result, colorize bool) string {
	kind := outcomeKind(result.Outcome)
	name := strings.TrimSpace(result.Invite.Name)
	if name == "" {
		name = "(no name)"
	}
	detail := outcomeLabel(result.Outcome)
	if result.Err != nil {
		detail = fmt.Sprintf("%s: %v", detail, result.Err)
	}
	line := fmt.Sprintf("[%d/%d] %s (%s): [%s] %s",
		result.Index+1, result.Total, name, result.Invite.Phone, statusKindLabel(kind), detail)
	return paint(line, kind, colorize)
}

func renderSummaryLines(summary dispatch.Summary) []string {
	return []string{
		fmt.Sprintf("Sent: %d", summary.Sent),
		fmt.Sprintf("Failed: %d", summary.Failed),
	}
}

func outcomeKind(outcome dispatch.Outcome) statusKind {
	switch outcome {
	case dispatch.OutcomeSent:
		return statusOK
	case dispatch.OutcomeSkipped, dispatch.OutcomeTimedOut:
		return statusWarn
	default:
		return statusError
	}
}

func outcomeLabel(outcome dispatch.Outcome) string {
	switch outcome {
	case dispatch.OutcomeSent:
		return "sent"
	case dispatch.OutcomeSkipped:
		return "skipped (no digits in phone)"
	case dispatch.OutcomeTimedOut:
		return "timed out waiting for the chat"
	default:
		return "failed"
	}
}

func paint(text string, kind statusKind, colorize bool) string {
	if !colorize {
		return text
	}
	if color := statusKindColor(kind); color != "" {
		return color + text + ansiReset
	}
	return text
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
