package schema

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DogFields carries the allow-listed fields of a create or partial-update request.
// A nil pointer means the field was not supplied.
type DogFields struct {
	Name       *string
	Breed      *string
	Age        *float64
	Weight     *float64
	IntakeDate *string
}

// Complete reports whether every allow-listed field was supplied.
func (f DogFields) Complete() bool {
	return f.Name != nil && f.Breed != nil && f.Age != nil && f.Weight != nil && f.IntakeDate != nil
}

// Empty reports whether no allow-listed field was supplied.
func (f DogFields) Empty() bool {
	return f.Name == nil && f.Breed == nil && f.Age == nil && f.Weight == nil && f.IntakeDate == nil
}

// Apply overwrites the supplied fields on the dog.
func (f DogFields) Apply(d *Dog) {
	if f.Name != nil {
		d.Name = *f.Name
	}
	if f.Breed != nil {
		d.Breed = *f.Breed
	}
	if f.Age != nil {
		d.Age = *f.Age
	}
	if f.Weight != nil {
		d.Weight = *f.Weight
	}
	if f.IntakeDate != nil {
		d.IntakeDate = *f.IntakeDate
	}
}

// UnmarshalJSON decodes a request body into DogFields. The body must be a JSON object.
// Keys outside the allow-list are ignored. A key holding JSON null still counts as supplied.
// Age and weight accept numbers, numeric strings, booleans and null; any other value is
// rejected with a ValidationError rather than stored as a non-number.
func (f *DogFields) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return NewValidationError("invalid body: expected a JSON object")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return NewValidationError("invalid body: %v", err)
	}

	var out DogFields
	for key, value := range raw {
		switch key {
		case DogFieldName:
			out.Name = ptr(coerceString(value))
		case DogFieldBreed:
			out.Breed = ptr(coerceString(value))
		case DogFieldIntakeDate:
			out.IntakeDate = ptr(coerceString(value))
		case DogFieldAge, DogFieldWeight:
			n, err := coerceNumber(value)
			if err != nil {
				return NewValidationError("field %q: %v", key, err)
			}
			if key == DogFieldAge {
				out.Age = ptr(n)
			} else {
				out.Weight = ptr(n)
			}
		}
	}
	*f = out
	return nil
}

// ParseNumber coerces a loosely typed string to a finite number.
// Blank strings are zero, everything else must parse as a float.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, NewValidationError("%q is not a number", s)
	}
	return n, nil
}

// coerceString returns strings as-is, null as empty, and any other JSON value as its raw text.
func coerceString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}

// coerceNumber accepts JSON numbers, numeric strings, booleans and null.
func coerceNumber(raw json.RawMessage) (float64, error) {
	switch string(raw) {
	case "null", "false":
		return 0, nil
	case "true":
		return 1, nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseNumber(s)
	}
	return 0, NewValidationError("%s is not a number", string(raw))
}

func ptr[T any](v T) *T {
	return &v
}
