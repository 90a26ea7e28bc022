package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/slidedeck/pkg/domain"
)

// Store implements ports.LocationStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]string),
	}
}

// Save persists the fragment in memory.
func (s *Store) Save(ctx context.Context, sessionID string, fragment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = fragment
	return nil
}

// Load retrieves the fragment from memory.
func (s *Store) Load(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	frag, ok := s.data[sessionID]
	if !ok {
		return "", domain.ErrLocationNotFound
	}
	return frag, nil
}

// Delete removes the fragment.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns stored sessions, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)
	return sessions, nil
}
