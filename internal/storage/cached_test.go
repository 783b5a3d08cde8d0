package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidekick/internal/sidekick"
)

// countingStorage counts backend reads and can be told to fail writes.
type countingStorage struct {
	*MemoryStorage
	gets     int
	failSets bool
}

func (c *countingStorage) Get(ctx context.Context, key string) ([]byte, error) {
	c.gets++
	return c.MemoryStorage.Get(ctx, key)
}

func (c *countingStorage) Set(ctx context.Context, key string, value []byte) error {
	if c.failSets {
		return errors.New("disk full")
	}
	return c.MemoryStorage.Set(ctx, key, value)
}

func TestCachedStorage_Contract(t *testing.T) {
	runStorageContract(t, NewCachedStorage(NewMemoryStorage(0), time.Minute), "")
}

func TestCachedStorage_ServesReadsFromCache(t *testing.T) {
	ctx := context.Background()
	backend := &countingStorage{MemoryStorage: NewMemoryStorage(0)}
	c := NewCachedStorage(backend, time.Minute)

	require.NoError(t, backend.MemoryStorage.Set(ctx, "k", []byte("v1")))

	for i := 0; i < 3; i++ {
		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v1", string(got))
	}
	assert.Equal(t, 1, backend.gets)

	// A write through the cache refreshes it without another backend read.
	require.NoError(t, c.Set(ctx, "k", []byte("v2")))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
	assert.Equal(t, 1, backend.gets)
}

func TestCachedStorage_MissesAreNotCached(t *testing.T) {
	ctx := context.Background()
	backend := &countingStorage{MemoryStorage: NewMemoryStorage(0)}
	c := NewCachedStorage(backend, time.Minute)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, sidekick.ErrNotFound)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, sidekick.ErrNotFound)
	assert.Equal(t, 2, backend.gets)
}

func TestCachedStorage_FailedWriteDropsEntry(t *testing.T) {
	ctx := context.Background()
	backend := &countingStorage{MemoryStorage: NewMemoryStorage(0)}
	c := NewCachedStorage(backend, time.Minute)

	require.NoError(t, c.Set(ctx, "k", []byte("v1")))
	backend.failSets = true
	require.Error(t, c.Set(ctx, "k", []byte("v2")))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got), "cache must not hold the rejected value")
}

func TestCachedStorage_RemoveInvalidates(t *testing.T) {
	ctx := context.Background()
	c := NewCachedStorage(NewMemoryStorage(0), time.Minute)

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	require.NoError(t, c.Remove(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, sidekick.ErrNotFound)
}
