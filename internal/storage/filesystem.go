package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"sidekick/internal/sidekick"
)

const fileSuffix = ".json"

// FileSystemStorage is a filesystem-based implementation of the Storage interface.
// Each key is one file under root, named after the query-escaped key:
//
//	<root>/
//	  sidekick-data-alice.json
//	  contacts%3Alist.json
//
// Writes go to a temp file that is renamed over the target, so a reader
// sees either the old or the new value.
type FileSystemStorage struct {
	root string
}

// NewFileSystemStorage creates a filesystem storage rooted at the given path.
func NewFileSystemStorage(root string) (*FileSystemStorage, error) {
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileSystemStorage{root: root}, nil
}

func (s *FileSystemStorage) path(key string) string {
	return filepath.Join(s.root, url.QueryEscape(key)+fileSuffix)
}

func (s *FileSystemStorage) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", key, sidekick.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileSystemStorage) Set(_ context.Context, key string, value []byte) error {
	return s.writeFile(s.path(key), bytes.NewReader(value), int64(len(value)))
}

func (s *FileSystemStorage) Remove(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *FileSystemStorage) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage directory: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileSuffix) || strings.HasPrefix(name, ".tmp-") {
			continue
		}
		key, err := url.QueryUnescape(strings.TrimSuffix(name, fileSuffix))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// ValidateSetup verifies that the storage directory is accessible and writable.
func (s *FileSystemStorage) ValidateSetup(context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("storage root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage root is not a directory: %s", s.root)
	}

	check, err := os.CreateTemp(s.root, ".tmp-check-*")
	if err != nil {
		return fmt.Errorf("storage root is not writable: %w", err)
	}
	check.Close()
	return os.Remove(check.Name())
}

// writeFile writes data from r to the specified path using atomic write (temp file + rename).
func (s *FileSystemStorage) writeFile(destPath string, r io.Reader, expectedSize int64) error {
	// Same directory as the target so the rename cannot cross filesystems.
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemStorage implements sidekick.Storage interface
var _ sidekick.Storage = (*FileSystemStorage)(nil)
