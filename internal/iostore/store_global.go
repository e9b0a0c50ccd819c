package iostore

import (
	"fmt"
	"os"
	"regexp"

	"github.com/huangsam/workbench/schema"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// validateTableName rejects anything that is not a plain SQL identifier.
func validateTableName(tableName string) error {
	if !tableNamePattern.MatchString(tableName) {
		return fmt.Errorf("invalid table name %q", tableName)
	}
	return nil
}

// quoteTableName quotes an already validated table name for the backend.
func quoteTableName(tableName string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + tableName + "`"
	}
	return `"` + tableName + `"`
}

// ClearStore removes all dogs data for the specified backend.
// For json and sqlite, it deletes the file.
// For SQL servers (MySQL/PostgreSQL), it drops the documents table.
// For the memory backend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.JSONBackend, schema.SQLiteBackend:
		if connStr == "" {
			return fmt.Errorf("file path cannot be empty for %s backend", backend)
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(connStr); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s file %s: %w", backend, connStr, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTable(backend, connStr, documentsTable)

	case schema.MemoryBackend:
		return nil

	default:
		return fmt.Errorf("unsupported dogs backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(backend schema.DatabaseBackend, connStr, tableName string) error {
	db, err := openDB(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", backend, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
