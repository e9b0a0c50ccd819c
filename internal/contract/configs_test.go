package contract

import (
	"testing"

	"github.com/huangsam/workbench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		DogsBackend: "json",
		DogsAddr:    DefaultDogsAddr,
		DefectsAddr: DefaultDefectsAddr,
		CORS:        "yes",
		Watch:       "no",
		LogLevel:    "info",
		Precision:   1,
		Output:      "text",
		Color:       "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*ConfigRawInput)
		expectError bool
		check       func(*testing.T, *Config)
	}{
		{
			name:   "valid minimal config",
			modify: func(*ConfigRawInput) {},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.JSONBackend, cfg.DogsBackend)
				assert.Equal(t, DefaultDogsFile, cfg.DogsDBConnect)
				assert.Equal(t, DefaultDefectsFile, cfg.DefectsFile)
				assert.Equal(t, ":3000", cfg.DogsAddr)
				assert.Equal(t, ":3001", cfg.DefectsAddr)
				assert.True(t, cfg.CORS)
				assert.False(t, cfg.Watch)
				assert.True(t, cfg.UseColors)
				assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
				assert.Equal(t, schema.TextOut, cfg.Output)
			},
		},
		{
			name:   "sqlite gets its own default file",
			modify: func(in *ConfigRawInput) { in.DogsBackend = "SQLite" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.SQLiteBackend, cfg.DogsBackend)
				assert.Equal(t, DefaultSQLiteFile, cfg.DogsDBConnect)
			},
		},
		{
			name:   "memory backend ignores connection string",
			modify: func(in *ConfigRawInput) { in.DogsBackend = "memory" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.MemoryBackend, cfg.DogsBackend)
				assert.Empty(t, cfg.DogsDBConnect)
			},
		},
		{
			name:        "invalid backend",
			modify:      func(in *ConfigRawInput) { in.DogsBackend = "redis" },
			expectError: true,
		},
		{
			name:        "mysql requires connection string",
			modify:      func(in *ConfigRawInput) { in.DogsBackend = "mysql" },
			expectError: true,
		},
		{
			name: "postgresql with valid connection string",
			modify: func(in *ConfigRawInput) {
				in.DogsBackend = "postgresql"
				in.DogsDBConnect = "host=localhost user=dogs dbname=dogs sslmode=disable"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.PostgreSQLBackend, cfg.DogsBackend)
			},
		},
		{
			name:        "invalid output format",
			modify:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "parquet without output file",
			modify:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: true,
		},
		{
			name: "parquet with output file",
			modify: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "dogs.parquet"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.ParquetOut, cfg.Output)
			},
		},
		{
			name:        "precision out of range",
			modify:      func(in *ConfigRawInput) { in.Precision = 3 },
			expectError: true,
		},
		{
			name:        "negative width",
			modify:      func(in *ConfigRawInput) { in.Width = -1 },
			expectError: true,
		},
		{
			name:        "invalid color flag",
			modify:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
		},
		{
			name:        "invalid cors flag",
			modify:      func(in *ConfigRawInput) { in.CORS = "sometimes" },
			expectError: true,
		},
		{
			name:        "invalid log level",
			modify:      func(in *ConfigRawInput) { in.LogLevel = "chatty" },
			expectError: true,
		},
		{
			name:        "address without port",
			modify:      func(in *ConfigRawInput) { in.DogsAddr = "localhost" },
			expectError: true,
		},
		{
			name:   "empty address disables a service",
			modify: func(in *ConfigRawInput) { in.DefectsAddr = "" },
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.DefectsAddr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.modify(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{"json path", schema.JSONBackend, "data.json", false},
		{"json blank path", schema.JSONBackend, "  ", true},
		{"sqlite path", schema.SQLiteBackend, "/tmp/dogs.db", false},
		{"memory ignores input", schema.MemoryBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/dogs", false},
		{"mysql missing database", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/", true},
		{"mysql malformed", schema.MySQLBackend, "not a dsn", true},
		{"postgresql missing host", schema.PostgreSQLBackend, "dbname=dogs", true},
		{"postgresql missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"unknown backend", schema.DatabaseBackend("redis"), "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
