package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore implements Store using one JSON document per key on the local
// filesystem. This is the default provider for development and
// single-instance deployments.
type LocalStore struct {
	basePath string // Root directory for persisted documents (e.g., "./data")
}

// NewLocalStore creates a local filesystem store.
//
// basePath is the directory where documents are written (created if it
// doesn't exist).
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &LocalStore{basePath: basePath}, nil
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.basePath, key+".json")
}

// Get reads the document stored under key.
func (s *LocalStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return data, true, nil
}

// Put writes the document under key. The write goes to a temporary file
// first and is renamed into place, so a crash mid-write never leaves a
// truncated document behind.
func (s *LocalStore) Put(ctx context.Context, key string, value []byte) error {
	target := s.path(key)

	tmp, err := os.CreateTemp(s.basePath, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}

	return nil
}

// Delete removes the document under key.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}
