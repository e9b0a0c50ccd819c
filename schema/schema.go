// Package schema has models, constants and errors shared by all parts of workbench.
package schema

import "strings"

// Dog is a single record of the dogs dataset.
type Dog struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Breed      string  `json:"breed"`
	Age        float64 `json:"age"`
	Weight     float64 `json:"weight"`
	IntakeDate string  `json:"intakeDate"`
}

// Field returns the value stored under the given wire field name.
// Unknown names return nil, which the comparator treats as a missing value.
func (d Dog) Field(name string) any {
	switch name {
	case DogFieldID:
		return d.ID
	case DogFieldName:
		return d.Name
	case DogFieldBreed:
		return d.Breed
	case DogFieldAge:
		return d.Age
	case DogFieldWeight:
		return d.Weight
	case DogFieldIntakeDate:
		return d.IntakeDate
	default:
		return nil
	}
}

// DeletedDog is the response body of a successful delete.
type DeletedDog struct {
	Deleted Dog `json:"deleted"`
}

// ListQuery holds the optional filter and sort parameters of a dog listing.
type ListQuery struct {
	Name  string    // Case-insensitive substring filter on the name
	Sort  string    // Field name to sort by; empty keeps storage order
	Order SortOrder // asc or desc
}

// ParseSortOrder maps any casing of "desc" to DescOrder and everything else to AscOrder.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(strings.ToLower(strings.TrimSpace(s))) == DescOrder {
		return DescOrder
	}
	return AscOrder
}
