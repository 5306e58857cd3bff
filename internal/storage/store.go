// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"

	"github.com/mmynk/paydown/internal/models"
)

// Store persists whole ledger snapshots.
// The engine never knows the storage medium; SQLite and a JSON file are
// interchangeable behind this interface.
type Store interface {
	// Load returns the last committed snapshot. A store with nothing saved
	// yet returns models.NewSnapshot().
	Load(ctx context.Context) (*models.Snapshot, error)

	// Save commits the snapshot atomically: either every record, the
	// settings and the milestone counter are written, or nothing is.
	Save(ctx context.Context, snapshot *models.Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
