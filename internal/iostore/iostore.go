// Package iostore is for persisting the dogs dataset and reading defect reports.
package iostore

import (
	"fmt"

	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
)

// documentsTable holds one JSON document per key for the SQL backends.
const documentsTable = "workbench_documents"

// dogsDocumentKey is the document key of the dogs dataset.
const dogsDocumentKey = "dogs"

// NewDogStore initializes and returns a DogStore for the backend.
// For json and sqlite, connStr is a file path. For mysql and postgresql it is a DSN.
// The memory backend ignores connStr.
func NewDogStore(backend schema.DatabaseBackend, connStr string) (contract.DogStore, error) {
	switch backend {
	case schema.JSONBackend:
		return NewJSONFileStore(connStr), nil
	case schema.MemoryBackend:
		return NewMemoryStore(nil), nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		return NewDocumentStore(documentsTable, dogsDocumentKey, backend, connStr)
	default:
		return nil, fmt.Errorf("unsupported dogs backend: %s. Must be json, sqlite, mysql, postgresql, or memory", backend)
	}
}
