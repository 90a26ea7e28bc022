package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken by a SessionLocker.
type UnlockFunc func(ctx context.Context) error

// SessionLocker serializes session creation across server replicas sharing
// one location store, so two replicas never build the same session at once.
type SessionLocker interface {
	// Lock blocks until the lock on key is held or ctx is done. The lock
	// expires after ttl even if the returned UnlockFunc is never called.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
