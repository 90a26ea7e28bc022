package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/atomic"
)

// ErrStopped is returned when work is submitted to a loop that is no longer running.
var ErrStopped = errors.New("scheduler loop stopped")

// Loop is a single-goroutine event loop.
// Tasks posted from any goroutine execute sequentially inside Run.
type Loop struct {
	tasks   chan func()
	stopped chan struct{}
	seq     atomic.Uint64
	pending atomic.Int64
}

// NewLoop creates a loop. It does nothing until Run is called.
func NewLoop() *Loop {
	return &Loop{
		tasks:   make(chan func(), 64),
		stopped: make(chan struct{}),
	}
}

// Run executes tasks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Post implements Scheduler. Tasks posted after the loop stopped are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.stopped:
	}
}

// After implements Scheduler.
func (l *Loop) After(d time.Duration, fn func()) Handle {
	h := Handle{ID: l.seq.Inc(), Delay: d}
	l.pending.Inc()
	time.AfterFunc(d, func() {
		l.Post(func() {
			l.pending.Dec()
			fn()
		})
	})
	return h
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	task := func() {
		defer close(done)
		fn()
	}

	select {
	case l.tasks <- task:
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of timers scheduled with After that have not run.
func (l *Loop) Pending() int {
	return int(l.pending.Load())
}
