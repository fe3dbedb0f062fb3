// Package operator provides the manual go-ahead checkpoints a run blocks on.
package operator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Confirmer blocks until the operator acknowledges prompt or ctx ends.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) error
}

// AutoConfirmer accepts every prompt immediately.
type AutoConfirmer struct{}

func (AutoConfirmer) Confirm(ctx context.Context, _ string) error {
	return ctx.Err()
}

// LineConfirmer treats each input line as an acknowledgement. Input is read
// on a single goroutine so a prompt that times out never loses a line.
type LineConfirmer struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan string
	mu    sync.Mutex
	err   error
	// abandoned is set when a prompt ended without input; lines typed for
	// it must not confirm the next prompt.
	abandoned bool
}

// NewLineConfirmer returns a confirmer reading from r and prompting on w.
func NewLineConfirmer(r io.Reader, w io.Writer) *LineConfirmer {
	if w == nil {
		w = io.Discard
	}
	return &LineConfirmer{in: r, out: w, lines: make(chan string, 16)}
}

func (c *LineConfirmer) start() {
	c.once.Do(func() {
		go func() {
			scanner := bufio.NewScanner(c.in)
			for scanner.Scan() {
				c.lines <- strings.TrimSpace(scanner.Text())
			}
			err := scanner.Err()
			if err == nil {
				err = io.EOF
			}
			c.mu.Lock()
			c.err = err
			c.mu.Unlock()
			close(c.lines)
		}()
	})
}

// Confirm prints prompt and waits for the next line. After a prompt was
// abandoned, lines already buffered are discarded first.
func (c *LineConfirmer) Confirm(ctx context.Context, prompt string) error {
	c.start()
	if c.abandoned {
		c.abandoned = false
		if err := c.drain(); err != nil {
			return err
		}
	}
	if prompt != "" {
		fmt.Fprint(c.out, prompt)
	}
	select {
	case <-ctx.Done():
		c.abandoned = true
		fmt.Fprintln(c.out)
		return ctx.Err()
	case _, ok := <-c.lines:
		if !ok {
			return c.readErr()
		}
		return nil
	}
}

func (c *LineConfirmer) drain() error {
	for {
		select {
		case _, ok := <-c.lines:
			if !ok {
				return c.readErr()
			}
		default:
			return nil
		}
	}
}

func (c *LineConfirmer) readErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		return io.EOF
	}
	return c.err
}
