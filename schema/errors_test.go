package schema_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/huangsam/workbench/schema"
	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	validation := fmt.Errorf("create: %w", schema.NewValidationError("missing %s", "name"))
	notFound := fmt.Errorf("get: %w", &schema.NotFoundError{ID: "4"})
	cause := errors.New("disk full")
	storage := fmt.Errorf("save: %w", &schema.StorageError{Op: "save", Err: cause})

	assert.True(t, schema.IsValidation(validation))
	assert.False(t, schema.IsValidation(notFound))
	assert.True(t, schema.IsNotFound(notFound))
	assert.False(t, schema.IsNotFound(storage))
	assert.True(t, schema.IsStorage(storage))
	assert.ErrorIs(t, storage, cause)

	assert.Equal(t, "create: missing name", validation.Error())
	assert.Equal(t, "get: dog 4 not found", notFound.Error())
	assert.Equal(t, "save: storage save failed: disk full", storage.Error())
}
