package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/slidedeck/pkg/adapters/memory"
	"github.com/aretw0/slidedeck/pkg/adapters/redis"
	"github.com/aretw0/slidedeck/pkg/domain"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	id       string
	closed   int
	closeErr error
}

func (s *fakeSession) Close() error {
	s.closed++
	return s.closeErr
}

type countingFactory struct {
	mu      sync.Mutex
	created int
}

func (f *countingFactory) open(ctx context.Context, id string) (*fakeSession, error) {
	time.Sleep(10 * time.Millisecond) // Simulate IO
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	return &fakeSession{id: id}, nil
}

func TestManager_OpenIsAtomic(t *testing.T) {
	f := &countingFactory{}
	mgr := NewManager(f.open)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]*fakeSession, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := mgr.Open(ctx, "talk")
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, f.created)
	for _, s := range results {
		assert.Same(t, results[0], s)
	}
	assert.Equal(t, []string{"talk"}, mgr.List())
}

func TestManager_FactoryError(t *testing.T) {
	boom := errors.New("deck missing")
	mgr := NewManager(func(ctx context.Context, id string) (*fakeSession, error) {
		return nil, boom
	})

	_, err := mgr.Open(context.Background(), "x")
	assert.ErrorIs(t, err, boom)

	_, err = mgr.Get("x")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_CloseAndReset(t *testing.T) {
	store := memory.NewStore()
	f := &countingFactory{}
	mgr := NewManager(f.open, WithStore(store))
	ctx := context.Background()

	s, err := mgr.Open(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "a", "#slide-3"))

	require.NoError(t, mgr.Close(ctx, "a"))
	assert.Equal(t, 1, s.closed)
	assert.ErrorIs(t, mgr.Close(ctx, "a"), domain.ErrSessionNotFound)

	frag, err := store.Load(ctx, "a")
	require.NoError(t, err, "Close keeps the location")
	assert.Equal(t, "#slide-3", frag)

	_, err = mgr.Open(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, mgr.Reset(ctx, "a"))
	_, err = store.Load(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)

	assert.NoError(t, mgr.Reset(ctx, "never-opened"))
}

func TestManager_CloseAllAggregatesErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	sessions := map[string]*fakeSession{
		"a": {id: "a", closeErr: errA},
		"b": {id: "b", closeErr: errB},
		"c": {id: "c"},
	}
	mgr := NewManager(func(ctx context.Context, id string) (*fakeSession, error) {
		return sessions[id], nil
	})
	ctx := context.Background()
	for id := range sessions {
		_, err := mgr.Open(ctx, id)
		require.NoError(t, err)
	}

	err := mgr.CloseAll()
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Empty(t, mgr.List())
	for _, s := range sessions {
		assert.Equal(t, 1, s.closed)
	}
}

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(func(ctx context.Context, id string) (*fakeSession, error) {
		return &fakeSession{id: id}, nil
	})
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_, _ = mgr.Open(ctx, sid)
		_ = mgr.Close(ctx, sid)
	}

	lockCount := len(mgr.locks)
	t.Logf("Sessions Created: %d, Locks Leaked: %d", count, lockCount)

	if lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Close", lockCount)
	}
}

func TestManager_DistributedLock(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	locker := redis.NewLocker(client, "test:")

	mgr := NewManager(func(ctx context.Context, id string) (*fakeSession, error) {
		assert.True(t, mr.Exists("test:lock:"+id), "factory runs under the distributed lock")
		return &fakeSession{id: id}, nil
	}, WithLocker(locker), WithLockTTL(time.Second))

	_, err = mgr.Open(context.Background(), "shared")
	require.NoError(t, err)
	assert.False(t, mr.Exists("test:lock:shared"), "lock released after open")
}
