package ports_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/aretw0/slidedeck/pkg/ports"
)

// MockStore is an in-memory implementation of LocationStore for testing purposes.
type MockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]string)}
}

func (m *MockStore) Save(ctx context.Context, sessionID string, fragment string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sessionID] = fragment
	return nil
}

func (m *MockStore) Load(ctx context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	frag, ok := m.data[sessionID]
	if !ok {
		return "", domain.ErrLocationNotFound
	}
	return frag, nil
}

func (m *MockStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestLocationStore_Contract(t *testing.T) {
	ports.RunLocationStoreContract(t, NewMockStore())
}
