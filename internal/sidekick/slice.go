package sidekick

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// SliceStore reads and writes module values that live under their own key,
// outside the user document.
type SliceStore struct {
	storage Storage
	logger  Logger
	mu      sync.Mutex
}

func NewSliceStore(storage Storage, logger Logger) *SliceStore {
	return &SliceStore{storage: storage, logger: logger}
}

// GetSlice returns the value stored at key, or def when the key is missing,
// holds null, or cannot be decoded into T. Read and decode failures are
// logged.
func GetSlice[T any](ctx context.Context, s *SliceStore, key string, def T) T {
	value, _ := readSlice(ctx, s, key, def)
	return value
}

// readSlice is GetSlice that also reports a backend read failure. Missing
// and undecodable values give def without an error.
func readSlice[T any](ctx context.Context, s *SliceStore, key string, def T) (T, error) {
	raw, err := s.storage.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		s.logger.Warn("reading slice failed, using default", "key", key, "error", err)
		return def, fmt.Errorf("reading %s: %w", key, err)
	}
	if isJSONNull(raw) {
		return def, nil
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		s.logger.Warn("decoding slice failed, using default", "key", key, "error", err)
		return def, nil
	}
	return value, nil
}

// SetSlice encodes value and writes it to key. Failures are logged and also
// returned; callers that only care about the in-memory value may ignore them.
func SetSlice[T any](ctx context.Context, s *SliceStore, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("encoding slice failed", "key", key, "error", err)
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.storage.Set(ctx, key, data); err != nil {
		s.logger.Warn("persisting slice failed", "key", key, "error", err)
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Remove deletes the value at key.
func (s *SliceStore) Remove(ctx context.Context, key string) error {
	if err := s.storage.Remove(ctx, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// Slice is a typed handle on one key of a SliceStore.
type Slice[T any] struct {
	store *SliceStore
	key   string
	def   func() T
}

// NewSlice returns a handle for key. def builds the value used when the key
// holds nothing usable; it is called for every miss so callers never share a
// default.
func NewSlice[T any](store *SliceStore, key string, def func() T) *Slice[T] {
	return &Slice[T]{store: store, key: key, def: def}
}

func (s *Slice[T]) Key() string { return s.key }

func (s *Slice[T]) Get(ctx context.Context) T {
	return GetSlice(ctx, s.store, s.key, s.def())
}

func (s *Slice[T]) Set(ctx context.Context, value T) error {
	return SetSlice(ctx, s.store, s.key, value)
}

// Update reads the current value, applies fn and writes the result back. The
// read-modify-write is serialized with every other Update on the same
// SliceStore. It returns the new value even when the write failed. When the
// read fails fn is not called and nothing is written, so a default never
// replaces a value storage could not return.
func (s *Slice[T]) Update(ctx context.Context, fn func(T) T) (T, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	current, err := readSlice(ctx, s.store, s.key, s.def())
	if err != nil {
		return current, err
	}
	next := fn(current)
	return next, s.Set(ctx, next)
}
