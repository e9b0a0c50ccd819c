package iostore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
)

// MemoryStore keeps the dataset in process. Nothing survives a restart.
type MemoryStore struct {
	mu        sync.RWMutex
	dogs      []schema.Dog
	version   int
	lastWrite time.Time
}

var _ contract.DogStore = &MemoryStore{} // Compile-time check

// NewMemoryStore returns a store seeded with a copy of dogs.
func NewMemoryStore(dogs []schema.Dog) *MemoryStore {
	seed := slices.Clone(dogs)
	if seed == nil {
		seed = []schema.Dog{}
	}
	return &MemoryStore{dogs: seed}
}

// Load returns a copy of the dataset.
func (s *MemoryStore) Load(ctx context.Context) ([]schema.Dog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.dogs)
	if out == nil {
		out = []schema.Dog{}
	}
	return out, nil
}

// Save replaces the dataset with a copy of dogs.
func (s *MemoryStore) Save(ctx context.Context, dogs []schema.Dog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dogs = slices.Clone(dogs)
	s.version++
	s.lastWrite = time.Now()
	return nil
}

// GetStatus returns status information about the in-process dataset.
func (s *MemoryStore) GetStatus(context.Context) (schema.StoreStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := schema.StoreStatus{
		Backend:         string(schema.MemoryBackend),
		Location:        "in-process",
		Connected:       true,
		DocumentVersion: s.version,
		LastWriteTime:   s.lastWrite,
	}
	fillDatasetStatus(&status, s.dogs)
	return status, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
