package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/slidedeck"
	"github.com/aretw0/slidedeck/internal/presentation/tui"
	"github.com/aretw0/slidedeck/pkg/adapters/file"
	"github.com/aretw0/slidedeck/pkg/deck"
	"github.com/aretw0/slidedeck/pkg/ports"
	"golang.org/x/term"
)

// PresentOptions contains all the configuration for the present command.
type PresentOptions struct {
	DeckOptions
	SessionID string
	Fresh     bool
	Watch     bool
	Headless  bool
	Width     int
}

// RunPresent shows a deck in the terminal until the user quits.
// The position is stored per session so the next run resumes where this one stopped.
func RunPresent(opts PresentOptions) error {
	logger := createLogger(opts.Debug, opts.LogFormat)
	if opts.SessionID == "" {
		opts.SessionID = DefaultSessionID(opts.Dir)
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	store := file.New("")
	if opts.Fresh {
		if err := store.Delete(sigCtx, opts.SessionID); err != nil {
			logger.Warn("Failed to reset session", "session_id", opts.SessionID, "err", err)
		}
	}

	stdin := int(os.Stdin.Fd())
	interactive := !opts.Headless && term.IsTerminal(stdin)
	if !opts.Headless {
		tui.PrintBanner(os.Stdout, slidedeck.Version)
	}

	r := slidedeck.NewRunner()
	r.Input = os.Stdin
	r.Output = os.Stdout
	r.Headless = opts.Headless
	r.Renderer = slidedeck.PlainRenderer
	if !opts.Headless {
		width := opts.Width
		if width <= 0 {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = w
			}
		}
		render, err := tui.NewFrameRenderer(tui.Options{Width: width})
		if err != nil {
			return err
		}
		r.Renderer = render
	}

	if interactive {
		state, err := term.MakeRaw(stdin)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer term.Restore(stdin, state)
	}

	alt := tui.NewAltScreen(os.Stdout)
	defer alt.Exit()

	var changes <-chan string
	if opts.Watch {
		var err error
		if changes, err = deck.Watch(sigCtx, opts.Dir, logger); err != nil {
			return err
		}
		logger.Info("Starting Watcher", "path", opts.Dir, "session_id", opts.SessionID)
	}

	for {
		reload, err := presentOnce(sigCtx, opts, r, store, alt, changes, logger)
		if err != nil || !reload {
			return handleExecutionError(err)
		}
		logger.Info("Watcher restarting")
	}
}

// presentOnce runs one presentation of the deck. It reports whether a file
// change asked for a reload.
func presentOnce(parent context.Context, opts PresentOptions, r *slidedeck.Runner, store ports.LocationStore,
	fs ports.Fullscreen, changes <-chan string, logger *slog.Logger) (bool, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	pOpts := append(opts.presentationOptions(logger),
		slidedeck.WithLocation(ports.BindLocation(store, opts.SessionID)),
	)
	if !opts.Headless {
		pOpts = append(pOpts, slidedeck.WithFullscreen(fs))
	}

	p, err := slidedeck.New(opts.Dir, pOpts...)
	if err != nil {
		if changes == nil {
			return false, fmt.Errorf("error loading deck: %w", err)
		}
		logger.Error("Deck load failed", "err", err)
		printSystemMessage(os.Stdout, "Deck load failed: %v. Waiting for changes...", err)
		select {
		case <-parent.Done():
			return false, nil
		case _, ok := <-changes:
			return ok, nil
		}
	}

	reloaded := make(chan string, 1)
	if changes != nil {
		go func() {
			select {
			case <-ctx.Done():
			case name, ok := <-changes:
				if ok {
					logger.Info("Change detected, triggering reload", "event", name)
					reloaded <- name
					cancel()
				}
			}
		}()
	}

	err = r.Run(ctx, p)
	select {
	case name := <-reloaded:
		printSystemMessage(os.Stdout, "Change detected in '%s'.", name)
		// Let the file system settle.
		time.Sleep(100 * time.Millisecond)
		return true, nil
	default:
	}
	return false, err
}
