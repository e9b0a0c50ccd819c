package iostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// DocumentStore keeps the whole dataset as a single JSON document row in a SQL table.
// Each save bumps the document version.
type DocumentStore struct {
	db        *sql.DB
	tableName string
	docKey    string
	backend   schema.DatabaseBackend
	connStr   string
}

var _ contract.DogStore = &DocumentStore{} // Compile-time check

// NewDocumentStore opens the database for the backend and ensures the documents table exists.
func NewDocumentStore(tableName, docKey string, backend schema.DatabaseBackend, connStr string) (*DocumentStore, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schema
	query := getCreateTableQuery(tableName, backend)
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &DocumentStore{
		db:        db,
		tableName: tableName,
		docKey:    docKey,
		backend:   backend,
		connStr:   connStr,
	}, nil
}

// openDB opens a database handle for one of the SQL backends.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		db, err := sql.Open("sqlite", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", connStr, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported SQL backend: %s. Must be sqlite, mysql, or postgresql", backend)
	}
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				doc_key VARCHAR(255) PRIMARY KEY,
				doc_value LONGBLOB NOT NULL,
				doc_version INT NOT NULL,
				doc_timestamp BIGINT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				doc_key TEXT PRIMARY KEY,
				doc_value BYTEA NOT NULL,
				doc_version INTEGER NOT NULL,
				doc_timestamp BIGINT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				doc_key TEXT PRIMARY KEY,
				doc_value BLOB NOT NULL,
				doc_version INTEGER NOT NULL,
				doc_timestamp INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// Load reads the dataset document. A missing row is an empty dataset.
func (ds *DocumentStore) Load(ctx context.Context) ([]schema.Dog, error) {
	value, _, _, err := ds.get(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return []schema.Dog{}, nil
	}
	if err != nil {
		return nil, &schema.StorageError{Op: "load", Err: err}
	}
	dogs, err := decodeDogs(value)
	if err != nil {
		return nil, &schema.StorageError{Op: "load", Err: fmt.Errorf("parse document %q: %w", ds.docKey, err)}
	}
	return dogs, nil
}

// Save upserts the dataset document.
func (ds *DocumentStore) Save(ctx context.Context, dogs []schema.Dog) error {
	value, err := encodeDogs(dogs)
	if err != nil {
		return &schema.StorageError{Op: "save", Err: err}
	}
	// Use backend-specific UPSERT
	query := ds.getUpsertQuery()
	if _, err := ds.db.ExecContext(ctx, query, ds.docKey, value, time.Now().Unix()); err != nil {
		return &schema.StorageError{Op: "save", Err: err}
	}
	return nil
}

func (ds *DocumentStore) get(ctx context.Context) ([]byte, int, int64, error) {
	var value []byte
	var version int
	var ts int64

	// Use backend-specific placeholder
	quotedTableName := quoteTableName(ds.tableName, ds.backend)
	query := fmt.Sprintf(`SELECT doc_value, doc_version, doc_timestamp FROM %s WHERE doc_key = %s`, quotedTableName, ds.getPlaceholder(1))
	row := ds.db.QueryRowContext(ctx, query, ds.docKey)

	if err := row.Scan(&value, &version, &ts); err != nil {
		return nil, 0, 0, err
	}
	return value, version, ts, nil
}

// getPlaceholder returns the n-th parameter placeholder for the backend.
func (ds *DocumentStore) getPlaceholder(n int) string {
	switch ds.backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("$%d", n)
	default: // SQLite and MySQL
		return "?"
	}
}

// getUpsertQuery returns the UPSERT query for the backend. The version starts at 1 and
// increments on every overwrite.
func (ds *DocumentStore) getUpsertQuery() string {
	quotedTableName := quoteTableName(ds.tableName, ds.backend)
	switch ds.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (doc_key, doc_value, doc_version, doc_timestamp) VALUES (?, ?, 1, ?) AS new
			ON DUPLICATE KEY UPDATE doc_value = new.doc_value, doc_version = %s.doc_version + 1, doc_timestamp = new.doc_timestamp`, quotedTableName, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (doc_key, doc_value, doc_version, doc_timestamp) VALUES ($1, $2, 1, $3)
			ON CONFLICT (doc_key) DO UPDATE SET doc_value = EXCLUDED.doc_value, doc_version = %s.doc_version + 1, doc_timestamp = EXCLUDED.doc_timestamp`, quotedTableName, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT INTO %s (doc_key, doc_value, doc_version, doc_timestamp) VALUES (?, ?, 1, ?)
			ON CONFLICT (doc_key) DO UPDATE SET doc_value = excluded.doc_value, doc_version = %s.doc_version + 1, doc_timestamp = excluded.doc_timestamp`, quotedTableName, quotedTableName)
	}
}

// Close closes the underlying DB connection.
func (ds *DocumentStore) Close() error {
	if ds.db != nil {
		return ds.db.Close()
	}
	return nil
}

// GetStatus returns status information about the document store.
func (ds *DocumentStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ds.backend),
		Location:  ds.location(),
		Connected: ds.db != nil,
	}
	if ds.db == nil {
		return status, nil
	}

	value, version, ts, err := ds.get(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return status, nil
	}
	if err != nil {
		return status, fmt.Errorf("failed to read document %q: %w", ds.docKey, err)
	}
	status.DocumentVersion = version
	status.LastWriteTime = time.Unix(ts, 0)
	status.SizeBytes = int64(len(value))

	dogs, err := decodeDogs(value)
	if err != nil {
		return status, fmt.Errorf("failed to parse document %q: %w", ds.docKey, err)
	}
	fillDatasetStatus(&status, dogs)
	return status, nil
}

// location describes where the data lives without leaking credentials.
func (ds *DocumentStore) location() string {
	switch ds.backend {
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(ds.connStr)
		if err != nil {
			return ds.tableName
		}
		return fmt.Sprintf("%s/%s.%s", cfg.Addr, cfg.DBName, ds.tableName)
	case schema.PostgreSQLBackend:
		return ds.tableName
	default:
		return fmt.Sprintf("%s:%s", ds.connStr, ds.tableName)
	}
}
