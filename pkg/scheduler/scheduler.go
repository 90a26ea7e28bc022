package scheduler

import "time"

// Handle identifies a scheduled task.
type Handle struct {
	ID    uint64
	Delay time.Duration
}

// Scheduler defers work onto a single cooperative execution context.
type Scheduler interface {
	// After runs fn once, no earlier than d from now.
	After(d time.Duration, fn func()) Handle
	// Post runs fn as soon as the execution context is free.
	Post(fn func())
}
