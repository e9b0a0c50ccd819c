package core

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/workbench/core/algo"
	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
)

// DogService implements the dogs CRUD operations on top of a DogStore.
// Every call loads the whole dataset; mutations save it back in full.
// Overlapping mutations are not isolated from each other and the last save wins.
type DogService struct {
	store contract.DogStore
}

// NewDogService creates a service backed by store.
func NewDogService(store contract.DogStore) *DogService {
	return &DogService{store: store}
}

// ParseDogID parses a path id. Integral numeric forms such as "1.0" or "1e0" name the
// same record as "1"; anything else cannot match a record, so it is reported as not found.
func ParseDogID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, &schema.NotFoundError{ID: raw}
	}
	return int64(f), nil
}

// List returns the dataset, optionally filtered by name and sorted by a field.
func (s *DogService) List(ctx context.Context, q schema.ListQuery) ([]schema.Dog, error) {
	dogs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if needle := strings.ToLower(strings.TrimSpace(q.Name)); needle != "" {
		filtered := make([]schema.Dog, 0, len(dogs))
		for _, d := range dogs {
			if strings.Contains(strings.ToLower(d.Name), needle) {
				filtered = append(filtered, d)
			}
		}
		dogs = filtered
	}

	if q.Sort != "" {
		dogs = algo.SortDogs(dogs, q.Sort, q.Order)
	}
	return dogs, nil
}

// Get returns the dog with the given id.
func (s *DogService) Get(ctx context.Context, id int64) (schema.Dog, error) {
	dogs, err := s.load(ctx)
	if err != nil {
		return schema.Dog{}, err
	}
	idx := indexOf(dogs, id)
	if idx < 0 {
		return schema.Dog{}, notFound(id)
	}
	return dogs[idx], nil
}

// Create appends a new dog with the next free id. All fields must be supplied.
func (s *DogService) Create(ctx context.Context, fields schema.DogFields) (schema.Dog, error) {
	if missing := missingFields(fields); len(missing) > 0 {
		return schema.Dog{}, schema.NewValidationError("missing required fields: %s", strings.Join(missing, ", "))
	}

	dogs, err := s.load(ctx)
	if err != nil {
		return schema.Dog{}, err
	}

	dog := schema.Dog{ID: nextID(dogs)}
	fields.Apply(&dog)
	dogs = append(dogs, dog)
	if err := s.save(ctx, dogs); err != nil {
		return schema.Dog{}, err
	}
	return dog, nil
}

// Update overwrites the supplied allow-listed fields of an existing dog.
func (s *DogService) Update(ctx context.Context, id int64, fields schema.DogFields) (schema.Dog, error) {
	dogs, err := s.load(ctx)
	if err != nil {
		return schema.Dog{}, err
	}
	idx := indexOf(dogs, id)
	if idx < 0 {
		return schema.Dog{}, notFound(id)
	}

	fields.Apply(&dogs[idx])
	if err := s.save(ctx, dogs); err != nil {
		return schema.Dog{}, err
	}
	return dogs[idx], nil
}

// Delete removes a dog and returns it.
func (s *DogService) Delete(ctx context.Context, id int64) (schema.Dog, error) {
	dogs, err := s.load(ctx)
	if err != nil {
		return schema.Dog{}, err
	}
	idx := indexOf(dogs, id)
	if idx < 0 {
		return schema.Dog{}, notFound(id)
	}

	removed := dogs[idx]
	dogs = append(dogs[:idx], dogs[idx+1:]...)
	if err := s.save(ctx, dogs); err != nil {
		return schema.Dog{}, err
	}
	return removed, nil
}

func (s *DogService) load(ctx context.Context) ([]schema.Dog, error) {
	dogs, err := s.store.Load(ctx)
	if err != nil {
		return nil, asStorageError("load", err)
	}
	return dogs, nil
}

func (s *DogService) save(ctx context.Context, dogs []schema.Dog) error {
	if err := s.store.Save(ctx, dogs); err != nil {
		return asStorageError("save", err)
	}
	return nil
}

// asStorageError wraps err unless a store already reported a StorageError.
func asStorageError(op string, err error) error {
	if schema.IsStorage(err) {
		return err
	}
	return &schema.StorageError{Op: op, Err: err}
}

// nextID returns one more than the largest id, or 1 for an empty dataset.
func nextID(dogs []schema.Dog) int64 {
	var maxID int64
	for _, d := range dogs {
		maxID = max(maxID, d.ID)
	}
	return maxID + 1
}

func indexOf(dogs []schema.Dog, id int64) int {
	for i, d := range dogs {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func notFound(id int64) error {
	return &schema.NotFoundError{ID: strconv.FormatInt(id, 10)}
}

func missingFields(f schema.DogFields) []string {
	var missing []string
	if f.Name == nil {
		missing = append(missing, schema.DogFieldName)
	}
	if f.Breed == nil {
		missing = append(missing, schema.DogFieldBreed)
	}
	if f.Age == nil {
		missing = append(missing, schema.DogFieldAge)
	}
	if f.Weight == nil {
		missing = append(missing, schema.DogFieldWeight)
	}
	if f.IntakeDate == nil {
		missing = append(missing, schema.DogFieldIntakeDate)
	}
	return missing
}
