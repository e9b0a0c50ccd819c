// Package cmd defines the command-line interface for workbench.
package cmd

import (
	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dogsCmd)
	rootCmd.AddCommand(defectsCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the dogs subcommands to the parent dogs command
	dogsCmd.AddCommand(dogsListCmd)
	dogsCmd.AddCommand(dogsGetCmd)
	dogsCmd.AddCommand(dogsCreateCmd)
	dogsCmd.AddCommand(dogsUpdateCmd)
	dogsCmd.AddCommand(dogsDeleteCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("dogs-backend", string(contract.DefaultDogsBackend), "Dogs storage backend: json or sqlite or mysql or postgresql or memory")
	rootCmd.PersistentFlags().String("dogs-db-connect", "", "File path for json/sqlite, connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("defects-file", contract.DefaultDefectsFile, "Path to the defects JSON file")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for percentages")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("dogs-addr", contract.DefaultDogsAddr, "Listen address of the dogs service (empty disables it)")
	serveCmd.Flags().String("defects-addr", contract.DefaultDefectsAddr, "Listen address of the defects service (empty disables it)")
	serveCmd.Flags().String("cors", "yes", "Allow cross-origin requests (yes/no)")
	serveCmd.Flags().String("watch", "yes", "Reload the defects file when it changes (yes/no)")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Query flags of dogsListCmd are read directly, they are not configuration
	dogsListCmd.Flags().String("name", "", "Case-insensitive substring the name must contain")
	dogsListCmd.Flags().String("sort", "", "Field to sort by (id, name, breed, age, weight, intakeDate)")
	dogsListCmd.Flags().String("order", string(schema.AscOrder), "Sort direction: asc or desc")

	for _, c := range []*cobra.Command{dogsCreateCmd, dogsUpdateCmd} {
		c.Flags().String("name", "", "Dog name")
		c.Flags().String("breed", "", "Dog breed")
		c.Flags().String("age", "", "Age in years")
		c.Flags().String("weight", "", "Weight in kilograms")
		c.Flags().String("intake-date", "", "Intake date (e.g., 2024-01-31)")
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
