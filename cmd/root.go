package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/huangsam/workbench/core"
	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/internal/iostore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "workbench",
	Short: "Serve and manage the dogs registry and the defects report.",
	Long: `Workbench runs two small REST services: a dogs registry with dynamic sorting
and a per-company defects report. The same operations are available from the command line.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	// A missing .env is the common case
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		contract.LogWarn("Could not load .env file", err)
	}

	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".workbench") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("WORKBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Set defaults in Viper
	viper.SetDefault("dogs-backend", contract.DefaultDogsBackend)
	viper.SetDefault("dogs-db-connect", "")
	viper.SetDefault("defects-file", contract.DefaultDefectsFile)
	viper.SetDefault("dogs-addr", contract.DefaultDogsAddr)
	viper.SetDefault("defects-addr", contract.DefaultDefectsAddr)
	viper.SetDefault("cors", "yes")
	viper.SetDefault("watch", "yes")
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", contract.DefaultOutputFormat)
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config, runs validation and configures logging.
func sharedSetup(_ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Replace the bootstrap logger now that the level is known.
	if err := contract.InitLogger(cfg.LogLevel.String()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// openDogService opens the configured dog store. The caller closes the store.
func openDogService() (*core.DogService, func(), error) {
	store, err := iostore.NewDogStore(cfg.DogsBackend, cfg.DogsDBConnect)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.DogsBackend, err)
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			contract.LogWarn("Failed to close dog store", err)
		}
	}
	return core.NewDogService(store), closeStore, nil
}

// openDefectService loads the configured defects file. The caller closes the source.
func openDefectService(watch bool) (*core.DefectService, func(), error) {
	source, err := iostore.NewFileDefectSource(cfg.DefectsFile, watch)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open defects file: %w", err)
	}
	closeSource := func() {
		if err := source.Close(); err != nil {
			contract.LogWarn("Failed to close defects source", err)
		}
	}
	return core.NewDefectService(source), closeSource, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
