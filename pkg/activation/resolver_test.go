package activation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Priority(t *testing.T) {
	var calls []string

	explicit := NewRegistry()
	explicit.Register(1, func(ctx context.Context) error {
		calls = append(calls, "explicit-1")
		return nil
	})

	named := NewNamedRegistry()
	named.Register("slide-1", func(ctx context.Context) error {
		calls = append(calls, "named-1")
		return nil
	})
	named.Register("slide-2", func(ctx context.Context) error {
		calls = append(calls, "named-2")
		return nil
	})

	chain := Chain(explicit, nil, ConventionResolver(named))

	hook, ok := chain.Resolve(1)
	require.True(t, ok)
	require.NoError(t, hook(context.Background()))

	hook, ok = chain.Resolve(2)
	require.True(t, ok)
	require.NoError(t, hook(context.Background()))

	_, ok = chain.Resolve(3)
	assert.False(t, ok, "unregistered index must not resolve")

	assert.Equal(t, []string{"explicit-1", "named-2"}, calls)
}

func TestRegistry_RegisterNilRemoves(t *testing.T) {
	r := NewRegistry()
	r.Register(0, func(ctx context.Context) error { return nil })
	assert.Equal(t, 1, r.Len())

	r.Register(0, nil)
	_, ok := r.Resolve(0)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestConventionResolver_NilRegistry(t *testing.T) {
	_, ok := ConventionResolver(nil).Resolve(0)
	assert.False(t, ok)
}

func TestNamedRegistry_Execute(t *testing.T) {
	r := NewNamedRegistry()
	boom := errors.New("boom")
	r.Register("chart", func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, r.Execute(context.Background(), "chart"), boom)
	assert.Error(t, r.Execute(context.Background(), "missing"))
	assert.Equal(t, []string{"chart"}, r.Names())
}

func TestConventionalName(t *testing.T) {
	assert.Equal(t, "slide-7", ConventionalName(7))
}

func TestIndexContext(t *testing.T) {
	_, ok := IndexFrom(context.Background())
	assert.False(t, ok)

	i, ok := IndexFrom(WithIndex(context.Background(), 3))
	assert.True(t, ok)
	assert.Equal(t, 3, i)
}
