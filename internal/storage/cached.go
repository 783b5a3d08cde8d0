package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/patrickmn/go-cache"

	"sidekick/internal/sidekick"
)

// CachedStorage keeps recently read values in process memory in front of a
// slower backend. Writes go to the backend first and only then to the cache,
// so a failed write never leaves a value in the cache that the backend does
// not hold. Misses are not cached.
type CachedStorage struct {
	backend sidekick.Storage
	cache   *cache.Cache
}

// NewCachedStorage wraps backend with a cache whose entries expire after ttl.
func NewCachedStorage(backend sidekick.Storage, ttl time.Duration) *CachedStorage {
	return &CachedStorage{
		backend: backend,
		cache:   cache.New(ttl, 2*ttl),
	}
}

func (c *CachedStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.cache.Get(key); ok {
		return append([]byte(nil), v.([]byte)...), nil
	}
	data, err := c.backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, append([]byte(nil), data...))
	return data, nil
}

func (c *CachedStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := c.backend.Set(ctx, key, value); err != nil {
		c.cache.Delete(key)
		return err
	}
	c.cache.SetDefault(key, append([]byte(nil), value...))
	return nil
}

func (c *CachedStorage) Remove(ctx context.Context, key string) error {
	c.cache.Delete(key)
	return c.backend.Remove(ctx, key)
}

func (c *CachedStorage) Keys(ctx context.Context) ([]string, error) {
	return c.backend.Keys(ctx)
}

func (c *CachedStorage) ValidateSetup(ctx context.Context) error {
	return c.backend.ValidateSetup(ctx)
}

// Close releases the backend when it holds a connection.
func (c *CachedStorage) Close() error {
	c.cache.Flush()
	if closer, ok := c.backend.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("closing cached backend: %w", err)
		}
	}
	return nil
}

var _ sidekick.Storage = (*CachedStorage)(nil)
