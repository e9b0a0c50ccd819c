package contract

import (
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/workbench/schema"
	"go.uber.org/zap/zapcore"
)

// Default values for configuration.
const (
	DefaultDogsFile     = "data.json"
	DefaultSQLiteFile   = "workbench.db"
	DefaultDefectsFile  = "defects.json"
	DefaultDogsAddr     = ":3000"
	DefaultDefectsAddr  = ":3001"
	DefaultLogLevel     = "info"
	DefaultPrecision    = 1
	DefaultDogsBackend  = schema.JSONBackend
	DefaultOutputFormat = schema.TextOut
)

// Config holds the runtime configuration for the services and the CLI.
// This struct is the "final, validated" config.
type Config struct {
	DogsBackend   schema.DatabaseBackend
	DogsDBConnect string // Please use env var as this may hold credentials

	DefectsFile string

	DogsAddr    string // Empty disables the dogs service
	DefectsAddr string // Empty disables the defects service
	CORS        bool
	Watch       bool // Reload the defects file when it changes
	LogLevel    zapcore.Level

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int  // Terminal width override (0 = auto-detect)
	UseColors  bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	DogsBackend   string `mapstructure:"dogs-backend"`
	DogsDBConnect string `mapstructure:"dogs-db-connect"`
	DefectsFile   string `mapstructure:"defects-file"`

	DogsAddr    string `mapstructure:"dogs-addr"`
	DefectsAddr string `mapstructure:"defects-addr"`
	CORS        string `mapstructure:"cors"`
	Watch       string `mapstructure:"watch"`
	LogLevel    string `mapstructure:"log-level"`

	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`
}

// ProcessAndValidate reads every field of input and populates cfg.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return validateServeInputs(cfg, input)
}

// ValidateDatabaseConnectionString checks that connStr is usable for the backend.
// File backends accept any non-empty path, memory ignores it.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MemoryBackend:
		return nil
	case schema.JSONBackend, schema.SQLiteBackend:
		if strings.TrimSpace(connStr) == "" {
			return fmt.Errorf("dogs-db-connect must be a file path when using %s backend", backend)
		}
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("dogs-db-connect is required when using %s backend", backend)
		}
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return fmt.Errorf("invalid MySQL connection string: %w", err)
		}
		if cfg.DBName == "" {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("dogs-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	default:
		return fmt.Errorf("unknown backend '%s'", backend)
	}
	return nil
}

// DefaultConnectionString returns the connection string used when none is configured.
func DefaultConnectionString(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.JSONBackend:
		return DefaultDogsFile
	case schema.SQLiteBackend:
		return DefaultSQLiteFile
	default:
		return ""
	}
}

// validateBackendConfig validates the dogs storage backend.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	backend := strings.ToLower(strings.TrimSpace(input.DogsBackend))
	if backend == "" {
		backend = string(DefaultDogsBackend)
	}
	cfg.DogsBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidDatabaseBackends[cfg.DogsBackend]; !ok {
		return fmt.Errorf("invalid dogs backend '%s'. must be json, sqlite, mysql, postgresql, memory", input.DogsBackend)
	}

	cfg.DogsDBConnect = input.DogsDBConnect
	if cfg.DogsDBConnect == "" {
		cfg.DogsDBConnect = DefaultConnectionString(cfg.DogsBackend)
	}
	return ValidateDatabaseConnectionString(cfg.DogsBackend, cfg.DogsDBConnect)
}

// validateSimpleInputs processes and validates output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	if cfg.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	output := strings.ToLower(input.Output)
	if output == "" {
		output = string(DefaultOutputFormat)
	}
	cfg.Output = schema.OutputMode(output)
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	level := input.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	cfg.LogLevel, err = zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}
	return nil
}

// validateServeInputs validates listen addresses and service toggles.
func validateServeInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.DefectsFile = input.DefectsFile
	if cfg.DefectsFile == "" {
		cfg.DefectsFile = DefaultDefectsFile
	}

	for _, addr := range []struct {
		flag  string
		value string
		dest  *string
	}{
		{"dogs-addr", input.DogsAddr, &cfg.DogsAddr},
		{"defects-addr", input.DefectsAddr, &cfg.DefectsAddr},
	} {
		if err := ValidateListenAddr(addr.value); err != nil {
			return fmt.Errorf("invalid --%s value: %w", addr.flag, err)
		}
		*addr.dest = addr.value
	}

	var err error
	if cfg.CORS, err = ParseBoolString(input.CORS); err != nil {
		return fmt.Errorf("invalid --cors value: %w", err)
	}
	if cfg.Watch, err = ParseBoolString(input.Watch); err != nil {
		return fmt.Errorf("invalid --watch value: %w", err)
	}
	return nil
}

// ValidateListenAddr checks a host:port listen address. An empty address is allowed and
// means the service is disabled.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return nil
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	if port == "" {
		return fmt.Errorf("missing port in address %q", addr)
	}
	return nil
}
