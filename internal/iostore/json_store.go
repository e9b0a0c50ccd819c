package iostore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
)

// JSONFileStore keeps the dataset as an indented JSON array in a single file.
type JSONFileStore struct {
	path string
}

var _ contract.DogStore = &JSONFileStore{} // Compile-time check

// NewJSONFileStore returns a store for the file at path. The file is created on first save.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Path returns the backing file path.
func (s *JSONFileStore) Path() string {
	return s.path
}

// Load reads the file. A missing or blank file is an empty dataset.
func (s *JSONFileStore) Load(ctx context.Context) ([]schema.Dog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []schema.Dog{}, nil
	}
	if err != nil {
		return nil, &schema.StorageError{Op: "load", Err: err}
	}
	dogs, err := decodeDogs(data)
	if err != nil {
		return nil, &schema.StorageError{Op: "load", Err: fmt.Errorf("parse %s: %w", s.path, err)}
	}
	return dogs, nil
}

// Save writes the dataset to a temp file in the same directory and renames it over the target,
// so readers never observe a partially written file.
func (s *JSONFileStore) Save(ctx context.Context, dogs []schema.Dog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeDogs(dogs)
	if err != nil {
		return &schema.StorageError{Op: "save", Err: err}
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return &schema.StorageError{Op: "save", Err: err}
	}
	return nil
}

// GetStatus returns status information about the file.
func (s *JSONFileStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:  string(schema.JSONBackend),
		Location: s.path,
	}
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return status, nil
	}
	if err != nil {
		return status, fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
	status.Connected = true
	status.SizeBytes = info.Size()
	status.LastWriteTime = info.ModTime()

	dogs, err := s.Load(ctx)
	if err != nil {
		return status, err
	}
	fillDatasetStatus(&status, dogs)
	return status, nil
}

// Close is a no-op for the file store.
func (s *JSONFileStore) Close() error {
	return nil
}

// decodeDogs parses a JSON array of dogs. Blank input is an empty dataset.
func decodeDogs(data []byte) ([]schema.Dog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []schema.Dog{}, nil
	}
	var dogs []schema.Dog
	if err := json.Unmarshal(data, &dogs); err != nil {
		return nil, err
	}
	if dogs == nil {
		dogs = []schema.Dog{}
	}
	return dogs, nil
}

// encodeDogs renders the dataset as a JSON array indented by two spaces.
func encodeDogs(dogs []schema.Dog) ([]byte, error) {
	if dogs == nil {
		dogs = []schema.Dog{}
	}
	return json.MarshalIndent(dogs, "", "  ")
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func fillDatasetStatus(status *schema.StoreStatus, dogs []schema.Dog) {
	status.TotalRecords = len(dogs)
	for _, d := range dogs {
		status.MaxID = max(status.MaxID, d.ID)
	}
}
