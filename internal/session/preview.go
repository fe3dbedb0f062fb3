package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"rsvpsend/internal/dispatch"
)

// Preview is a dry-run session. Every link is ready immediately and every
// commit succeeds without side effects.
type Preview struct {
	out     io.Writer
	links   []string
	commits int
}

// NewPreview returns a preview session that echoes opened links to w when
// w is non-nil.
func NewPreview(w io.Writer) *Preview {
	return &Preview{out: w}
}

func (p *Preview) Open(_ context.Context, url string) error {
	p.links = append(p.links, url)
	if p.out != nil {
		fmt.Fprintf(p.out, "  link: %s\n", url)
	}
	return nil
}

func (p *Preview) AwaitReady(ctx context.Context, _ time.Duration) (dispatch.Readiness, error) {
	if err := ctx.Err(); err != nil {
		return dispatch.TimedOut, err
	}
	return dispatch.Ready, nil
}

func (p *Preview) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.commits++
	return nil
}

// Links returns the links opened so far, in order.
func (p *Preview) Links() []string {
	out := make([]string, len(p.links))
	copy(out, p.links)
	return out
}

// Commits returns how many sends would have been pressed.
func (p *Preview) Commits() int {
	return p.commits
}
