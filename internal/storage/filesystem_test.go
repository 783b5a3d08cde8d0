package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemStorage_Contract(t *testing.T) {
	s, err := NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)
	runStorageContract(t, s, "")
}

func TestFileSystemStorage_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "data")
	s, err := NewFileSystemStorage(root)
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	require.NoError(t, s.ValidateSetup(context.Background()))
}

func TestFileSystemStorage_EscapesKeys(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileSystemStorage(root)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "tour:documents", []byte("[]")))
	require.NoError(t, s.Set(ctx, "../escape", []byte("[]")))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"tour%3Adocuments.json", "..%2Fescape.json"}, names)

	_, err = os.Stat(filepath.Join(filepath.Dir(root), "escape.json"))
	assert.True(t, os.IsNotExist(err), "key must not escape the root")
}

func TestFileSystemStorage_KeysSkipsForeignFiles(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileSystemStorage(root)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "invoices:list", []byte("[]")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".tmp-123.json"), []byte("x"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub.json"), 0700))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"invoices:list"}, keys)
}

func TestFileSystemStorage_NoTempFilesLeft(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileSystemStorage(root)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Set(ctx, "sidekick-data-guest", []byte(strings.Repeat("x", i*100))))
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sidekick-data-guest.json", entries[0].Name())
}

func TestFileSystemStorage_ValidateSetupNotADirectory(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileSystemStorage(root)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(root))
	require.NoError(t, os.WriteFile(root, []byte("file"), 0600))

	assert.Error(t, s.ValidateSetup(context.Background()))
}
