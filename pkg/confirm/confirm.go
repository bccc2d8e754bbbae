// Package confirm gates destructive operations behind a user decision.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/comixed/comixed-client/pkg/store"
)

// Request describes one confirmation. Confirm runs only when the user
// affirms.
type Request struct {
	Title   string
	Message string
	Confirm func()
}

// Confirmer asks the user to affirm a request. It reports whether the
// request was confirmed.
type Confirmer interface {
	Confirm(ctx context.Context, req Request) (bool, error)
}

// Func adapts a decision function to Confirmer.
type Func func(ctx context.Context, req Request) bool

// Confirm implements Confirmer.
func (f Func) Confirm(ctx context.Context, req Request) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !f(ctx, req) {
		return false, nil
	}
	if req.Confirm != nil {
		req.Confirm()
	}
	return true, nil
}

// Dispatch asks c to affirm req and dispatches action to d only when the
// user confirms. A dispatch error is returned alongside the decision.
func Dispatch(ctx context.Context, c Confirmer, d store.Dispatcher, req Request, action store.Action) (bool, error) {
	var dispatchErr error
	req.Confirm = func() { dispatchErr = d.Dispatch(ctx, action) }
	ok, err := c.Confirm(ctx, req)
	if err != nil {
		return false, err
	}
	return ok, dispatchErr
}

// Always confirms every request.
func Always() Confirmer {
	return Func(func(context.Context, Request) bool { return true })
}

// Never declines every request.
func Never() Confirmer {
	return Func(func(context.Context, Request) bool { return false })
}

// Prompt asks on out and reads a y/N answer from in. One goroutine reads
// in for the life of the prompt.
type Prompt struct {
	mu        sync.Mutex
	in        *bufio.Reader
	out       io.Writer
	once      sync.Once
	lines     chan answer
	abandoned bool
}

type answer struct {
	line string
	err  error
}

// NewPrompt creates an interactive confirmer.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

func (p *Prompt) read() {
	p.lines = make(chan answer, 1)
	go func() {
		defer close(p.lines)
		for {
			line, err := p.in.ReadString('\n')
			p.lines <- answer{line, err}
			if err != nil {
				return
			}
		}
	}()
}

// Confirm implements Confirmer. Only "y" or "yes" (any case) affirms; end
// of input declines. A line typed after a cancelled prompt is dropped
// before the next prompt is shown.
func (p *Prompt) Confirm(ctx context.Context, req Request) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return false, err
	}
	p.once.Do(p.read)
	if p.abandoned {
		p.abandoned = false
		select {
		case <-p.lines:
		default:
		}
	}

	if req.Title != "" {
		fmt.Fprintf(p.out, "%s\n", req.Title)
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", req.Message)

	var a answer
	select {
	case <-ctx.Done():
		p.abandoned = true
		return false, ctx.Err()
	case got, ok := <-p.lines:
		if !ok {
			return false, nil
		}
		a = got
	}
	if a.err != nil && !errors.Is(a.err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", a.err)
	}

	switch strings.ToLower(strings.TrimSpace(a.line)) {
	case "y", "yes":
		if req.Confirm != nil {
			req.Confirm()
		}
		return true, nil
	}
	return false, nil
}
