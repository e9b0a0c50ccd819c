package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/internal/iostore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeCmd focused on dog store management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the dogs store",
	Long: `Inspect, wipe or migrate the store that holds the dogs dataset.

Supported backends: JSON file (default), SQLite, MySQL, PostgreSQL, or memory

Subcommands:
  status  - Show record count, version and connection info
  clear   - Remove all stored data
  migrate - Apply or roll back SQL schema migrations

Examples:
  # Check the SQLite store
  workbench store status --dogs-backend sqlite

  # Clear a MySQL store (set connection string via env variable)
  WORKBENCH_DOGS_BACKEND=mysql WORKBENCH_DOGS_DB_CONNECT="..." workbench store clear`,
}

var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display store statistics and connection details",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := iostore.NewDogStore(cfg.DogsBackend, cfg.DogsDBConnect)
		if err != nil {
			return fmt.Errorf("failed to open %s store: %w", cfg.DogsBackend, err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus(rootCtx)
		if err != nil {
			return fmt.Errorf("failed to get store status: %w", err)
		}
		return iostore.PrintStoreStatus(os.Stdout, status)
	},
}

var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored dogs",
	Long: `Delete the dogs dataset from the configured backend.

For JSON and SQLite: Deletes the file
For MySQL/PostgreSQL: Drops the documents table
For memory: Nothing to do`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearStore(cfg.DogsBackend, cfg.DogsDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply SQL schema migrations to the dogs store",
	Long: `Migrate the documents table of a SQL backend to a given version.

Examples:
  # Migrate to the latest version
  workbench store migrate --dogs-backend postgresql

  # Roll back to the initial state
  workbench store migrate --dogs-backend sqlite --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		if !cfg.DogsBackend.IsSQL() {
			return fmt.Errorf("migrations apply to sql backends only, not %s", cfg.DogsBackend)
		}
		return iostore.Migrate(cfg.DogsBackend, cfg.DogsDBConnect, viper.GetInt("target-version"), os.Stdout)
	},
}
