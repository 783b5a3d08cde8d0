package storage

import (
	"context"
	"fmt"
	"sync"

	"sidekick/internal/sidekick"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// It is useful for tests and for the "memory" backend, which forgets
// everything when the process exits. An optional size limit makes Set fail
// with sidekick.ErrQuotaExceeded the way a full browser store would.
// This implementation is safe for concurrent use.
type MemoryStorage struct {
	maxSize int64 // total bytes of keys and values; 0 means unlimited
	values  map[string][]byte
	size    int64
	mu      sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory storage. maxSize limits the
// total bytes of keys and values; 0 disables the limit.
func NewMemoryStorage(maxSize int64) *MemoryStorage {
	return &MemoryStorage{
		maxSize: maxSize,
		values:  make(map[string][]byte),
	}
}

func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, sidekick.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	newSize := m.size + int64(len(value))
	if old, ok := m.values[key]; ok {
		newSize -= int64(len(old))
	} else {
		newSize += int64(len(key))
	}
	if m.maxSize > 0 && newSize > m.maxSize {
		return fmt.Errorf("writing %s (%d bytes): %w", key, len(value), sidekick.ErrQuotaExceeded)
	}

	m.values[key] = append([]byte(nil), value...)
	m.size = newSize
	return nil
}

func (m *MemoryStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.values[key]; ok {
		m.size -= int64(len(key) + len(old))
		delete(m.values, key)
	}
	return nil
}

func (m *MemoryStorage) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys, nil
}

// ValidateSetup always succeeds for in-memory storage.
func (m *MemoryStorage) ValidateSetup(context.Context) error {
	return nil
}

// Compile-time check that MemoryStorage implements sidekick.Storage interface
var _ sidekick.Storage = (*MemoryStorage)(nil)
