package encryption

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"sidekick/internal/sidekick"
)

// ErrLocked is returned when an encrypted value is read before the session
// has been unlocked.
var ErrLocked = errors.New("storage is locked: unlock with the passphrase first")

// EncryptedStorage encrypts every value before handing it to the backend.
// Writes only need the public key. Reads need the DecryptionContext set by
// Unlock. Values written before encryption was enabled are returned as-is
// and are encrypted the next time they are saved.
type EncryptedStorage struct {
	backend   sidekick.Storage
	encryptor sidekick.Encryptor

	mu  sync.RWMutex
	dec sidekick.DecryptionContext
}

// NewEncryptedStorage wraps backend. The returned storage is locked.
func NewEncryptedStorage(backend sidekick.Storage, encryptor sidekick.Encryptor) *EncryptedStorage {
	return &EncryptedStorage{backend: backend, encryptor: encryptor}
}

// Unlock opens the private key for the rest of the session.
func (s *EncryptedStorage) Unlock(passphrase string) error {
	dec, err := s.encryptor.Unlock(passphrase)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.dec = dec
	s.mu.Unlock()
	return nil
}

// Locked reports whether reads of encrypted values would fail.
func (s *EncryptedStorage) Locked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dec == nil
}

func (s *EncryptedStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !looksEncrypted(data) {
		return data, nil
	}

	s.mu.RLock()
	dec := s.dec
	s.mu.RUnlock()
	if dec == nil {
		return nil, fmt.Errorf("%s: %w", key, ErrLocked)
	}

	var plain bytes.Buffer
	if err := dec.Decrypt(bytes.NewReader(data), &plain); err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", key, err)
	}
	return plain.Bytes(), nil
}

func (s *EncryptedStorage) Set(ctx context.Context, key string, value []byte) error {
	var buf bytes.Buffer
	if err := s.encryptor.Encrypt(bytes.NewReader(value), &buf); err != nil {
		return fmt.Errorf("encrypting %s: %w", key, err)
	}
	return s.backend.Set(ctx, key, buf.Bytes())
}

func (s *EncryptedStorage) Remove(ctx context.Context, key string) error {
	return s.backend.Remove(ctx, key)
}

func (s *EncryptedStorage) Keys(ctx context.Context) ([]string, error) {
	return s.backend.Keys(ctx)
}

// ValidateSetup checks the backend and that the key pair exists.
func (s *EncryptedStorage) ValidateSetup(ctx context.Context) error {
	if !s.encryptor.IsConfigured() {
		return fmt.Errorf("encryption keys not found: run 'sidekick keys init'")
	}
	return s.backend.ValidateSetup(ctx)
}

// Close releases the backend when it holds a connection.
func (s *EncryptedStorage) Close() error {
	if closer, ok := s.backend.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// looksEncrypted tells stored JSON apart from ciphertext. Plain values are
// JSON documents or arrays, which never start with the age armor or the test
// header.
func looksEncrypted(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("-----BEGIN AGE")) ||
		bytes.HasPrefix(trimmed, []byte("age-encryption.org/")) ||
		bytes.HasPrefix(data, testHeader)
}

var _ sidekick.Storage = (*EncryptedStorage)(nil)
