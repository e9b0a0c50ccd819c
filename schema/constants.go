package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// SortOrder represents the direction of a dynamic sort.
	SortOrder string

	// DatabaseBackend represents the storage backend for the dogs dataset.
	DatabaseBackend string

	// QualityLabel represents the quality band of a company's production.
	QualityLabel string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All sort orders supported.
const (
	AscOrder  SortOrder = "asc" // default
	DescOrder SortOrder = "desc"
)

// All storage backends supported.
const (
	JSONBackend       DatabaseBackend = "json" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	MemoryBackend     DatabaseBackend = "memory"
)

// Quality labels derived from the OK percentage of a company.
const (
	ExcellentQuality QualityLabel = "Excellent"
	GoodQuality      QualityLabel = "Good"
	FairQuality      QualityLabel = "Fair"
	PoorQuality      QualityLabel = "Poor"
)

// Dog field names as they appear on the wire and in sort queries.
const (
	DogFieldID         = "id"
	DogFieldName       = "name"
	DogFieldBreed      = "breed"
	DogFieldAge        = "age"
	DogFieldWeight     = "weight"
	DogFieldIntakeDate = "intakeDate"
)

// DogAllowedFields is the allow-list of fields a partial update may modify.
var DogAllowedFields = []string{DogFieldName, DogFieldBreed, DogFieldAge, DogFieldWeight, DogFieldIntakeDate}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid storage backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	JSONBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	MemoryBackend:     {},
}

// IsSQL reports whether the backend is served through database/sql.
func (b DatabaseBackend) IsSQL() bool {
	switch b {
	case SQLiteBackend, MySQLBackend, PostgreSQLBackend:
		return true
	default:
		return false
	}
}
