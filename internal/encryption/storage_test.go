package encryption

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidekick/internal/config"
	"sidekick/internal/sidekick"
	"sidekick/internal/storage"
)

func TestEncryptedStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStorage(0)
	enc := NewTestEncryptor()
	s := NewEncryptedStorage(backend, enc)

	require.NoError(t, s.Set(ctx, "sidekick-data-alice", []byte(`{"tasks":[]}`)))

	raw, err := backend.Get(ctx, "sidekick-data-alice")
	require.NoError(t, err)
	assert.NotEqual(t, `{"tasks":[]}`, string(raw), "backend must hold ciphertext")

	_, err = s.Get(ctx, "sidekick-data-alice")
	assert.ErrorIs(t, err, ErrLocked)
	assert.True(t, s.Locked())

	require.NoError(t, s.Unlock(""))
	assert.False(t, s.Locked())
	got, err := s.Get(ctx, "sidekick-data-alice")
	require.NoError(t, err)
	assert.Equal(t, `{"tasks":[]}`, string(got))
}

func TestEncryptedStorage_PlainValuesPassThrough(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStorage(0)
	require.NoError(t, backend.Set(ctx, "contacts:list", []byte(`[{"id":1}]`)))

	s := NewEncryptedStorage(backend, NewTestEncryptor())
	got, err := s.Get(ctx, "contacts:list")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))
}

func TestEncryptedStorage_MissingKey(t *testing.T) {
	s := NewEncryptedStorage(storage.NewMemoryStorage(0), NewTestEncryptor())
	_, err := s.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, sidekick.ErrNotFound), "got %v", err)
}

func TestEncryptedStorage_WrongPassphraseStaysLocked(t *testing.T) {
	enc := NewTestEncryptor()
	require.NoError(t, enc.Setup("right"))
	s := NewEncryptedStorage(storage.NewMemoryStorage(0), enc)

	assert.ErrorIs(t, s.Unlock("wrong"), ErrWrongPassphrase)
	assert.True(t, s.Locked())
}

func TestEncryptedStorage_WithAge(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	enc := NewAgeEncryptor(config.EncryptionConfig{
		PublicKeyPath:  filepath.Join(dir, "sidekick.pub"),
		PrivateKeyPath: filepath.Join(dir, "sidekick.key"),
	})
	s := NewEncryptedStorage(storage.NewMemoryStorage(0), enc)

	assert.Error(t, s.ValidateSetup(ctx), "keys not generated yet")
	require.NoError(t, enc.Setup("pass"))
	require.NoError(t, s.ValidateSetup(ctx))

	require.NoError(t, s.Set(ctx, "invoices:list", []byte(`[]`)))
	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"invoices:list"}, keys)

	require.NoError(t, s.Unlock("pass"))
	got, err := s.Get(ctx, "invoices:list")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, s.Remove(ctx, "invoices:list"))
	_, err = s.Get(ctx, "invoices:list")
	assert.Error(t, err)
}

func TestLooksEncrypted(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"document", `{"tasks":[]}`, false},
		{"array", `[]`, false},
		{"armor", "-----BEGIN AGE ENCRYPTED FILE-----\nabc", true},
		{"armor after newline", "\n-----BEGIN AGE ENCRYPTED FILE-----", true},
		{"binary age", "age-encryption.org/v1\n", true},
		{"test header", string(testHeader) + "{}", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looksEncrypted([]byte(tt.in)))
		})
	}
}
