package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunLocationStoreContract runs a suite of tests to verify that a LocationStore implementation
// adheres to the defined interface contract.
func RunLocationStoreContract(t *testing.T, store LocationStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, sessionID, "#slide-3")
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "#slide-3", loaded)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, "#slide-1"))
		require.NoError(t, store.Save(ctx, sessionID, "#slide-2"))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "#slide-2", loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrLocationNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, "#slide-0"))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrLocationNotFound, "Load after Delete should return ErrLocationNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, "#slide-0")
		_ = store.Save(ctx, id2, "#slide-1")

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})

	t.Run("Bound Location", func(t *testing.T) {
		id := sessionID + "-bound"
		defer func() { _ = store.Delete(ctx, id) }()

		loc := BindLocation(store, id)
		frag, err := loc.Fragment()
		require.NoError(t, err)
		assert.Empty(t, frag, "missing fragment reads as empty")

		require.NoError(t, loc.Replace("#slide-4"))
		frag, err = loc.Fragment()
		require.NoError(t, err)
		assert.Equal(t, "#slide-4", frag)
	})
}
