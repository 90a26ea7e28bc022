package activation

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// NamedRegistry manages hooks addressed by name.
type NamedRegistry struct {
	mu    sync.RWMutex
	hooks map[string]Hook
}

// NewNamedRegistry creates a new empty registry.
func NewNamedRegistry() *NamedRegistry {
	return &NamedRegistry{
		hooks: make(map[string]Hook),
	}
}

// Register adds a hook to the registry.
// If a hook with the same name exists, it is overwritten.
func (r *NamedRegistry) Register(name string, hook Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[name] = hook
}

// Lookup returns the hook registered under name.
func (r *NamedRegistry) Lookup(name string) (Hook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hook, ok := r.hooks[name]
	return hook, ok
}

// Execute looks up a hook by name and runs it.
// Returns an error if the hook is not found.
func (r *NamedRegistry) Execute(ctx context.Context, name string) error {
	hook, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("hook not found: %s", name)
	}
	return hook(ctx)
}

// Names returns the registered names, sorted.
func (r *NamedRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.hooks))
	for name := range r.hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
