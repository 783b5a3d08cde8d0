package sidekick

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// LegacyStorageKey is the single shared key used before documents were
// scoped per user. Single-user installations keep using it.
const LegacyStorageKey = "sidekick-data"

// StorageKey returns the key holding the document of userID. An empty id
// maps to the guest document.
func StorageKey(userID string) string {
	if userID == "" {
		return LegacyStorageKey + "-guest"
	}
	return LegacyStorageKey + "-" + userID
}

// LoadDocument reads the document stored at key. It never fails: a missing
// key, an unreadable backend or an undecodable value all produce Default(),
// the latter two with a warning.
func LoadDocument(ctx context.Context, storage Storage, logger Logger, key string) Document {
	doc, _ := readDocument(ctx, storage, logger, key)
	return doc
}

// readDocument is LoadDocument that also reports a backend read failure. A
// missing or undecodable value is not an error: storage answered, and the
// defaults stand for what it holds.
func readDocument(ctx context.Context, storage Storage, logger Logger, key string) (Document, error) {
	raw, err := storage.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		logger.Warn("reading document failed, using defaults", "key", key, "error", err)
		return Default(), fmt.Errorf("reading document %s: %w", key, err)
	}
	if !json.Valid(raw) {
		logger.Warn("stored document is not valid JSON, using defaults", "key", key)
		return Default(), nil
	}
	return MergeWithDefaults(raw), nil
}

// SaveDocument encodes doc and writes it to key in a single Set.
func SaveDocument(ctx context.Context, storage Storage, key string, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := storage.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing document %s: %w", key, err)
	}
	return nil
}

// DocumentStore holds one user's document in memory and writes every change
// through to storage.
//
// The in-memory document is authoritative: a failed write is logged and the
// change is kept, so the caller's view stays consistent even when storage is
// full or unreachable. Durable reports whether the last write reached
// storage. Within a process the store is safe for concurrent use; separate
// processes sharing a key overwrite each other (last write wins).
//
// When the initial read fails the store works in memory only: the defaults
// it holds would overwrite whatever the backend has, so nothing is written
// until a Reload or Reset succeeds.
type DocumentStore struct {
	storage Storage
	logger  Logger
	key     string

	mu         sync.Mutex
	doc        Document
	durable    bool
	loadFailed bool
}

// NewDocumentStore creates a store for key and loads its current value.
func NewDocumentStore(ctx context.Context, storage Storage, logger Logger, key string) *DocumentStore {
	doc, err := readDocument(ctx, storage, logger, key)
	return &DocumentStore{
		storage:    storage,
		logger:     logger,
		key:        key,
		doc:        doc,
		durable:    err == nil,
		loadFailed: err != nil,
	}
}

// Key returns the storage key backing the store.
func (s *DocumentStore) Key() string { return s.key }

// Get returns a copy of the current document.
func (s *DocumentStore) Get() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Set replaces the document and persists it. It returns the new document.
func (s *DocumentStore) Set(ctx context.Context, doc Document) Document {
	return s.Update(ctx, func(Document) Document { return doc })
}

// Update applies fn to a copy of the current document, stores the result and
// persists it. fn runs with the store locked and must not call back into the
// store.
func (s *DocumentStore) Update(ctx context.Context, fn func(Document) Document) Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.doc.Clone())
	next.SchemaVersion = CurrentSchemaVersion
	s.doc = next.Clone()
	s.persist(ctx)
	return next
}

// Durable reports whether the last change reached storage.
func (s *DocumentStore) Durable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.durable
}

// Reload discards the in-memory document and reads it again from storage.
// A successful read ends in-memory-only mode.
func (s *DocumentStore) Reload(ctx context.Context) Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := readDocument(ctx, s.storage, s.logger, s.key)
	s.doc = doc
	s.loadFailed = err != nil
	s.durable = err == nil
	return s.doc.Clone()
}

// Reset removes the stored document and returns the store to Default().
func (s *DocumentStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = Default()
	if err := s.storage.Remove(ctx, s.key); err != nil {
		s.durable = false
		return fmt.Errorf("removing document %s: %w", s.key, err)
	}
	s.durable = true
	s.loadFailed = false
	s.logger.Info("document reset", "key", s.key)
	return nil
}

// persist must be called with s.mu held.
func (s *DocumentStore) persist(ctx context.Context) {
	if s.loadFailed {
		s.durable = false
		s.logger.Warn("document was not read from storage, keeping change in memory only", "key", s.key)
		return
	}
	if err := SaveDocument(ctx, s.storage, s.key, s.doc); err != nil {
		s.durable = false
		s.logger.Warn("persisting document failed, keeping in-memory state", "key", s.key, "error", err)
		return
	}
	s.durable = true
	s.logger.Debug("document persisted", "key", s.key)
}
