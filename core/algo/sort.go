package algo

import (
	"slices"

	"github.com/huangsam/workbench/schema"
)

// FieldFunc extracts the named field from a record. It returns nil for unknown fields.
type FieldFunc[T any] func(record T, field string) any

// SortByField returns a sorted copy of records ordered by the given field.
// The sort is stable, so ties and records whose field is missing keep their relative order.
// An empty field returns an unsorted copy.
func SortByField[T any](records []T, field string, order schema.SortOrder, extract FieldFunc[T]) []T {
	sorted := slices.Clone(records)
	if field == "" || len(sorted) < 2 {
		return sorted
	}

	// Classify each key once instead of on every comparison.
	type keyed struct {
		key    Value
		record T
	}
	items := make([]keyed, len(sorted))
	for i, r := range sorted {
		items[i] = keyed{key: Classify(extract(r, field)), record: r}
	}

	c := NewComparator()
	slices.SortStableFunc(items, func(x, y keyed) int {
		return c.CompareValues(x.key, y.key, order)
	})

	for i, it := range items {
		sorted[i] = it.record
	}
	return sorted
}

// SortDogs sorts dogs by a wire field name.
func SortDogs(dogs []schema.Dog, field string, order schema.SortOrder) []schema.Dog {
	return SortByField(dogs, field, order, func(d schema.Dog, f string) any {
		return d.Field(f)
	})
}
