package deck

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/slidedeck/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// DebounceInterval groups bursts of file events (editors write several times per save).
var DebounceInterval = 150 * time.Millisecond

// Watch signals on the returned channel, with the name of the last changed
// file, whenever a slide, the manifest or the hooks file changes. The channel
// is closed when ctx is done.
func Watch(ctx context.Context, dir string, logger *slog.Logger) (<-chan string, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		var (
			timer   *time.Timer
			timerC  <-chan time.Time
			pending string
		)

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevant(ev) {
					continue
				}
				pending = filepath.Base(ev.Name)
				if timer == nil {
					timer = time.NewTimer(DebounceInterval)
				} else {
					timer.Reset(DebounceInterval)
				}
				timerC = timer.C
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("deck watcher error", "err", err)
			case <-timerC:
				timerC = nil
				select {
				case out <- pending:
				default:
				}
			}
		}
	}()

	return out, nil
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(ev.Name)
	return name == ManifestFile || name == HooksFile || isSlideFile(name)
}
