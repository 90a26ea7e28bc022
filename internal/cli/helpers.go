package cli

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/aretw0/slidedeck"
	"github.com/aretw0/slidedeck/internal/logging"
	"github.com/aretw0/slidedeck/pkg/observability"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// DeckOptions are the deck overrides shared by every command.
// Zero values keep the manifest settings.
type DeckOptions struct {
	Dir             string
	Debug           bool
	LogFormat       string
	SettleDelay     time.Duration
	ActivationDelay time.Duration
	SwipeThreshold  float64
}

// presentationOptions turns flags into library options. Flags override the manifest.
func (o DeckOptions) presentationOptions(logger *slog.Logger) []slidedeck.Option {
	opts := []slidedeck.Option{slidedeck.WithLogger(logger)}
	if o.Debug {
		opts = append(opts, slidedeck.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}
	if o.SettleDelay > 0 {
		opts = append(opts, slidedeck.WithSettleDelay(o.SettleDelay))
	}
	if o.ActivationDelay > 0 {
		opts = append(opts, slidedeck.WithActivationDelay(o.ActivationDelay))
	}
	if o.SwipeThreshold > 0 {
		opts = append(opts, slidedeck.WithSwipeThreshold(o.SwipeThreshold))
	}
	return opts
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout flow UI).
func createLogger(debug bool, format string) *slog.Logger {
	if debug {
		return logging.NewTo(os.Stderr, slog.LevelDebug, logging.Format(format))
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\r\n", fmt.Sprintf(format, args...))
}

// DefaultSessionID scopes the resume position of a deck by its absolute path
// to prevent collisions between decks.
func DefaultSessionID(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	hash := md5.Sum([]byte(abs))
	return fmt.Sprintf("deck-%x", hash[:4])
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, slidedeck.ErrQuit)
}

func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		// Exit 0 for interruptions
		return nil
	}
	return err
}
