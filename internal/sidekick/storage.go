package sidekick

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Storage.Get when no value exists at the key.
	ErrNotFound = errors.New("key not found")

	// ErrQuotaExceeded is returned by Storage.Set when the backend refuses the
	// write because it is full.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Storage is a string-keyed value store. Values are opaque bytes; the
// document and slice stores put JSON in them.
//
// Set must replace the whole value at once: a reader never observes a
// partially written value.
type Storage interface {
	// Get returns the value stored at key, or an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value at key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the value at key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists every key currently stored, in no particular order.
	Keys(ctx context.Context) ([]string, error)

	// ValidateSetup verifies that the backend is reachable and usable.
	ValidateSetup(ctx context.Context) error
}
