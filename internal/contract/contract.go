// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/workbench/schema"
)

// DogStore defines the persistence operations for the dogs dataset.
// The dataset is read and written as a whole, so every mutation is a load-modify-save cycle.
// Implementations must be safe to call from concurrent goroutines but provide no isolation
// between overlapping cycles; the last Save wins.
type DogStore interface {
	// Load returns the full dataset. A missing or empty dataset is returned as an empty slice.
	Load(ctx context.Context) ([]schema.Dog, error)

	// Save replaces the full dataset.
	Save(ctx context.Context, dogs []schema.Dog) error

	// GetStatus returns status information about the store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close releases any resources held by the store.
	Close() error
}

// DefectSource defines the read-only source of defect reports.
type DefectSource interface {
	// Records returns the current snapshot of defect records.
	Records(ctx context.Context) ([]schema.DefectRecord, error)

	// Close stops any background work of the source.
	Close() error
}
