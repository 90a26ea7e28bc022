package slidedeck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aretw0/slidedeck/pkg/input"
	"github.com/aretw0/slidedeck/pkg/view"
)

// Runner drives a presentation from a key stream and redraws it on an output.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer FrameRenderer

	once sync.Once
	keys chan keyRead
}

// FrameRenderer turns a view frame into the text written to Output.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type FrameRenderer func(view.Frame) (string, error)

type keyRead struct {
	key input.Key
	err error
}

// ErrQuit is returned by Run when the user asked to leave.
var ErrQuit = errors.New("quit requested")

// NewRunner creates a Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// IsQuit reports whether k ends the presentation.
func IsQuit(k input.Key) bool {
	switch {
	case k.Ctrl && (k.Name == "c" || k.Name == "d"):
		return true
	case !k.Ctrl && !k.Meta && (k.Name == "q" || k.Name == "Q"):
		return true
	}
	return false
}

// PlainRenderer draws a frame without styling.
func PlainRenderer(f view.Frame) (string, error) {
	if f.Index < 0 {
		return "(no slides)", nil
	}
	var b strings.Builder
	if f.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", f.Title)
	}
	b.WriteString(strings.TrimSpace(f.Body))
	if f.Counter != "" {
		fmt.Fprintf(&b, "\n\n[%s]", f.Counter)
	}
	return b.String(), nil
}

// Run starts p, then feeds it keys until ctx is done, the input ends or a quit
// key is read. The key reader survives across calls so the same Runner can
// drive successive presentations (e.g. after a hot reload).
func (r *Runner) Run(ctx context.Context, p *Presentation) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	if r.Renderer == nil {
		r.Renderer = PlainRenderer
	}
	r.once.Do(r.startReader)

	if err := p.Start(ctx); err != nil {
		return fmt.Errorf("start error: %w", err)
	}
	defer p.Close()

	last := -2
	redraw := func(force bool) error {
		f, err := p.Frame(ctx)
		if err != nil {
			return err
		}
		if !force && r.Headless && f.Index == last {
			return nil
		}
		last = f.Index
		return r.draw(f)
	}
	if err := redraw(true); err != nil {
		return fmt.Errorf("render error: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case kr, ok := <-r.keys:
			if !ok {
				return nil
			}
			if kr.err != nil {
				if errors.Is(kr.err, io.EOF) {
					return nil
				}
				return fmt.Errorf("input error: %w", kr.err)
			}
			if IsQuit(kr.key) {
				return ErrQuit
			}
			handled, err := p.Key(ctx, kr.key)
			if err != nil {
				return fmt.Errorf("navigation error: %w", err)
			}
			if !handled {
				continue
			}
			if err := redraw(false); err != nil {
				return fmt.Errorf("render error: %w", err)
			}
		}
	}
}

func (r *Runner) startReader() {
	r.keys = make(chan keyRead)
	dec := input.NewTerminalDecoder(r.Input)
	go func() {
		defer close(r.keys)
		for {
			k, err := dec.ReadKey()
			r.keys <- keyRead{key: k, err: err}
			if err != nil {
				return
			}
		}
	}()
}

func (r *Runner) draw(f view.Frame) error {
	out, err := r.Renderer(f)
	if err != nil {
		return err
	}
	if r.Headless {
		_, err = fmt.Fprintln(r.Output, strings.TrimSpace(out))
		return err
	}
	// Clear and home the cursor.
	_, err = fmt.Fprintf(r.Output, "\x1b[H\x1b[2J%s\r\n", strings.ReplaceAll(strings.TrimRight(out, "\n"), "\n", "\r\n"))
	return err
}
