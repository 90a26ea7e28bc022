package activation

import (
	"context"
	"fmt"
	"sync"
)

// Hook is a per-slide side effect, invoked the first time a slide becomes visible.
type Hook func(ctx context.Context) error

// Resolver finds the hook for a slide index.
type Resolver interface {
	Resolve(index int) (Hook, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(index int) (Hook, bool)

// Resolve calls f(index).
func (f ResolverFunc) Resolve(index int) (Hook, bool) {
	return f(index)
}

// Registry maps slide indices to hooks.
type Registry struct {
	mu    sync.RWMutex
	hooks map[int]Hook
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make(map[int]Hook),
	}
}

// Register sets the hook for index, replacing any previous one.
// A nil hook removes the registration.
func (r *Registry) Register(index int, hook Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hook == nil {
		delete(r.hooks, index)
		return
	}
	r.hooks[index] = hook
}

// Resolve implements Resolver.
func (r *Registry) Resolve(index int) (Hook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hook, ok := r.hooks[index]
	return hook, ok
}

// Len returns the number of registered indices.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// Chain returns a resolver that asks each resolver in turn and returns the
// first hook found. Nil resolvers are skipped.
func Chain(resolvers ...Resolver) Resolver {
	return ResolverFunc(func(index int) (Hook, bool) {
		for _, r := range resolvers {
			if r == nil {
				continue
			}
			if hook, ok := r.Resolve(index); ok && hook != nil {
				return hook, true
			}
		}
		return nil, false
	})
}

// ConventionalName is the legacy hook name for a slide index.
func ConventionalName(index int) string {
	return fmt.Sprintf("slide-%d", index)
}

// ConventionResolver resolves index to the hook registered in named under
// ConventionalName(index). It is meant as the last resolver of a Chain.
func ConventionResolver(named *NamedRegistry) Resolver {
	return ResolverFunc(func(index int) (Hook, bool) {
		if named == nil {
			return nil, false
		}
		return named.Lookup(ConventionalName(index))
	})
}

type indexKey struct{}

// WithIndex returns a context carrying the slide index a hook runs for.
func WithIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, indexKey{}, index)
}

// IndexFrom returns the slide index stored by WithIndex.
func IndexFrom(ctx context.Context) (int, bool) {
	i, ok := ctx.Value(indexKey{}).(int)
	return i, ok
}
