package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidekick/internal/sidekick"
)

// runStorageContract exercises the behaviour every backend must share.
// Keys used here start with prefix so networked backends can run against
// shared servers.
func runStorageContract(t *testing.T, s sidekick.Storage, prefix string) {
	t.Helper()
	ctx := context.Background()
	docKey := prefix + "sidekick-data-alice"
	sliceKey := prefix + "contacts:list"

	t.Run("missing key is ErrNotFound", func(t *testing.T) {
		_, err := s.Get(ctx, prefix+"never-written")
		require.Error(t, err)
		assert.True(t, errors.Is(err, sidekick.ErrNotFound), "got %v", err)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, docKey, []byte(`{"tasks":[]}`)))
		got, err := s.Get(ctx, docKey)
		require.NoError(t, err)
		assert.Equal(t, `{"tasks":[]}`, string(got))
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, docKey, []byte(`{"tasks":[{"id":"t1"}]}`)))
		got, err := s.Get(ctx, docKey)
		require.NoError(t, err)
		assert.Equal(t, `{"tasks":[{"id":"t1"}]}`, string(got))
	})

	t.Run("keys with separators", func(t *testing.T) {
		value := []byte(`[` + strings.Repeat(`{"id":1},`, 50) + `{"id":2}]`)
		require.NoError(t, s.Set(ctx, sliceKey, value))
		got, err := s.Get(ctx, sliceKey)
		require.NoError(t, err)
		assert.Equal(t, string(value), string(got))
	})

	t.Run("keys lists stored values", func(t *testing.T) {
		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		var ours []string
		for _, k := range keys {
			if strings.HasPrefix(k, prefix) {
				ours = append(ours, k)
			}
		}
		sort.Strings(ours)
		assert.Equal(t, []string{sliceKey, docKey}, ours)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, sliceKey))
		_, err := s.Get(ctx, sliceKey)
		assert.ErrorIs(t, err, sidekick.ErrNotFound)

		// Removing again is not an error.
		require.NoError(t, s.Remove(ctx, sliceKey))
		require.NoError(t, s.Remove(ctx, docKey))
	})

	t.Run("validate setup", func(t *testing.T) {
		require.NoError(t, s.ValidateSetup(ctx))
	})
}
