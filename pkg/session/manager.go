package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/slidedeck/internal/logging"
	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/aretw0/slidedeck/pkg/ports"
	"go.uber.org/multierr"
)

// DefaultLockTTL bounds how long a distributed session lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// Factory creates the live session for an ID.
type Factory[S io.Closer] func(ctx context.Context, sessionID string) (S, error)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type config struct {
	store   ports.LocationStore
	locker  ports.SessionLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*config)

// WithLocker enables distributed locking.
func WithLocker(locker ports.SessionLocker) Option {
	return func(c *config) {
		c.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.lockTTL = ttl
	}
}

// WithStore lets Reset forget the persisted location of a session.
func WithStore(store ports.LocationStore) Option {
	return func(c *config) {
		c.store = store
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager[S io.Closer] struct {
	config
	factory Factory[S]

	mu    sync.Mutex
	locks map[string]*lockEntry

	smu      sync.RWMutex
	sessions map[string]S
}

// NewManager creates a session manager opening sessions with factory.
func NewManager[S io.Closer](factory Factory[S], opts ...Option) *Manager[S] {
	m := &Manager[S]{
		config: config{
			lockTTL: DefaultLockTTL,
			logger:  logging.NewNop(),
		},
		factory:  factory,
		locks:    make(map[string]*lockEntry),
		sessions: make(map[string]S),
	}
	for _, opt := range opts {
		opt(&m.config)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager[S]) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager[S]) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Open returns the live session for sessionID, creating it on first use.
func (m *Manager[S]) Open(ctx context.Context, sessionID string) (S, error) {
	if s, err := m.Get(sessionID); err == nil {
		return s, nil
	}

	var s S
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		if s, err = m.Get(sessionID); err == nil {
			return nil
		}

		s, err = m.factory(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to open session %s: %w", sessionID, err)
		}

		m.smu.Lock()
		m.sessions[sessionID] = s
		m.smu.Unlock()

		m.logger.Debug("session opened", "session_id", sessionID)
		return nil
	})
	return s, err
}

// Get returns an open session or domain.ErrSessionNotFound.
func (m *Manager[S]) Get(sessionID string) (S, error) {
	m.smu.RLock()
	defer m.smu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		var zero S
		return zero, domain.ErrSessionNotFound
	}
	return s, nil
}

// Close closes and forgets an open session. Its persisted location is kept.
func (m *Manager[S]) Close(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.closeLocked(sessionID)
	})
}

// Reset closes the session and deletes its persisted location, so the next
// Open starts from the first slide.
func (m *Manager[S]) Reset(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		err := m.closeLocked(sessionID)
		if errors.Is(err, domain.ErrSessionNotFound) {
			err = nil
		}
		if m.store != nil {
			err = multierr.Append(err, m.store.Delete(ctx, sessionID))
		}
		return err
	})
}

// CloseAll closes every open session and returns the combined errors.
func (m *Manager[S]) CloseAll() error {
	m.smu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]S)
	m.smu.Unlock()

	var err error
	for id, s := range sessions {
		if cerr := s.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("session %s: %w", id, cerr))
		}
	}
	return err
}

// List returns the IDs of open sessions, sorted.
func (m *Manager[S]) List() []string {
	m.smu.RLock()
	defer m.smu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager[S]) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

func (m *Manager[S]) closeLocked(sessionID string) error {
	m.smu.Lock()
	s, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.smu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	m.logger.Debug("session closed", "session_id", sessionID)
	return s.Close()
}
