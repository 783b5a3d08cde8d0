package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidekick/internal/sidekick"
)

func TestMemoryStorage_Contract(t *testing.T) {
	runStorageContract(t, NewMemoryStorage(0), "")
}

func TestMemoryStorage_Quota(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(20)

	// 3 bytes of key + 10 of value.
	require.NoError(t, s.Set(ctx, "abc", []byte("0123456789")))

	err := s.Set(ctx, "def", []byte("0123456789"))
	assert.ErrorIs(t, err, sidekick.ErrQuotaExceeded)

	// The refused write left nothing behind.
	_, err = s.Get(ctx, "def")
	assert.ErrorIs(t, err, sidekick.ErrNotFound)

	// Replacing a value only counts the difference.
	require.NoError(t, s.Set(ctx, "abc", []byte("01234567890123456")))

	// Freeing space makes room again.
	require.NoError(t, s.Remove(ctx, "abc"))
	require.NoError(t, s.Set(ctx, "def", []byte("0123456789")))
}

func TestMemoryStorage_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(0)

	value := []byte("hello")
	require.NoError(t, s.Set(ctx, "k", value))
	value[0] = 'j'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	got[0] = 'y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(again))
}
