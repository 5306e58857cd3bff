// Package jsonfile provides a storage.Store that keeps the ledger in a
// single JSON document on disk.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mmynk/paydown/internal/models"
	"github.com/mmynk/paydown/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store reads and writes one snapshot document.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a Store at path, creating parent directories as needed.
// The file itself is created on the first Save.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &Store{
		path:   path,
		logger: slog.Default().With("store", "jsonfile", "path", path),
	}, nil
}

// Load reads the document. A missing file is an empty ledger; a malformed
// one is repaired field by field (see Decode).
func (s *Store) Load(ctx context.Context) (*models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data, s.logger), nil
}

// Save writes the document to a temporary file and renames it over the
// previous one, so readers see either the old or the new ledger.
func (s *Store) Save(ctx context.Context, snap *models.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Close is a no-op; the store holds no open handles.
func (s *Store) Close() error {
	return nil
}
