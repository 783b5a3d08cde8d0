package testutil

import (
	"context"
	"errors"
	"sync"

	"sidekick/internal/sidekick"
	"sidekick/internal/storage"
)

// NewTestStorage creates a new unlimited in-memory storage for testing.
func NewTestStorage() *storage.MemoryStorage {
	return storage.NewMemoryStorage(0)
}

// ErrInjected is the error FailingStorage returns for failed operations.
var ErrInjected = errors.New("injected storage failure")

// FailingStorage wraps a Storage and fails selected operations on demand.
// Safe for concurrent use.
type FailingStorage struct {
	sidekick.Storage

	mu       sync.Mutex
	failGet  bool
	failSet  error
	setCalls int
}

// NewFailingStorage wraps backend; nothing fails until told to.
func NewFailingStorage(backend sidekick.Storage) *FailingStorage {
	return &FailingStorage{Storage: backend}
}

// FailGets makes every Get return ErrInjected while on is true.
func (f *FailingStorage) FailGets(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet = on
}

// FailSets makes every Set return err. A nil err stops failing.
func (f *FailingStorage) FailSets(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSet = err
}

// SetCalls reports how many times Set was called, failed calls included.
func (f *FailingStorage) SetCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setCalls
}

func (f *FailingStorage) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return nil, ErrInjected
	}
	return f.Storage.Get(ctx, key)
}

func (f *FailingStorage) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	f.setCalls++
	err := f.failSet
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Storage.Set(ctx, key, value)
}

var _ sidekick.Storage = (*FailingStorage)(nil)
