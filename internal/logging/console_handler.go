package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// runIDWidth is how much of a run ID the console prefix shows; enough to
// match `rsvpsend runs show <prefix>`.
const runIDWidth = 8

// consoleHandler writes one human-readable line per record:
//
//	2026-10-16T18:04:05Z INFO  [1a2b3c4d] dispatch: reminder sent (invite 17: sent) name="Ana Pérez"
//
// The run ID, component, invite ID and outcome are lifted out of the
// trailing key=value list.
type consoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Level
	attrs  []slog.Attr
	prefix string
}

func newConsoleHandler(w io.Writer, level slog.Level) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, h.qualify(attr))
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func (h *consoleHandler) qualify(attr slog.Attr) slog.Attr {
	if h.prefix != "" && attr.Key != "" {
		attr.Key = h.prefix + attr.Key
	}
	return attr
}

// line collects the promoted fields of a record.
type line struct {
	runID     string
	component string
	inviteID  string
	outcome   string
	rest      []slog.Attr
}

func (l *line) add(attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		for _, member := range attr.Value.Group() {
			if attr.Key != "" {
				member.Key = attr.Key + "." + member.Key
			}
			l.add(member)
		}
		return
	}
	switch attr.Key {
	case FieldRunID:
		l.runID = attr.Value.String()
	case FieldComponent:
		if l.component == "" {
			l.component = attr.Value.String()
		}
	case FieldInviteID:
		l.inviteID = attr.Value.String()
	case FieldOutcome:
		l.outcome = attr.Value.String()
	default:
		l.rest = append(l.rest, attr)
	}
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var l line
	for _, attr := range h.attrs {
		l.add(attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		l.add(h.qualify(attr))
		return true
	})

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(ts.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, " %-5s ", record.Level.String())
	if l.runID != "" {
		fmt.Fprintf(&b, "[%s] ", shorten(l.runID, runIDWidth))
	}
	if l.component != "" {
		b.WriteString(l.component)
		b.WriteString(": ")
	}
	b.WriteString(strings.TrimSpace(record.Message))

	switch {
	case l.inviteID != "" && l.outcome != "":
		fmt.Fprintf(&b, " (invite %s: %s)", l.inviteID, l.outcome)
	case l.inviteID != "":
		fmt.Fprintf(&b, " (invite %s)", l.inviteID)
	case l.outcome != "":
		fmt.Fprintf(&b, " (%s)", l.outcome)
	}

	if h.level <= slog.LevelDebug {
		if src := record.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&b, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}

	for _, attr := range l.rest {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteByte('=')
		b.WriteString(consoleValue(attr.Value))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func shorten(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width]
}

func consoleValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
