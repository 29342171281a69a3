package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modelgate/modelgate/internal"
	"github.com/modelgate/modelgate/internal/logging"
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
var cfg = &internal.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &internal.ConfigRawInput{}

// tables holds the active weight and threshold tables for this process.
var tables *internal.TableHolder

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "modelgate",
	Short:              "Score ML artifacts and gate registry admission.",
	Long:               `Modelgate evaluates models, datasets and code along several quality dimensions and decides whether an artifact is trustworthy enough to admit.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".modelgate") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("MODELGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("budget", "")
	viper.SetDefault("clone-depth", internal.DefaultCloneDepth)
	viper.SetDefault("workers", internal.DefaultWorkers)
	viper.SetDefault("hub-url", internal.DefaultHubBaseURL)
	viper.SetDefault("registry", internal.DefaultRegistryPath)
	viper.SetDefault("output", internal.NDJSONOut)
	viper.SetDefault("log-level", "info")
	viper.SetDefault("log-format", "text")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := internal.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Initialize structured logging with the validated settings.
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, os.Stderr)

	// 5. Load the weight and threshold tables.
	holder, err := internal.NewTableHolder(cfg.TablesPath)
	if err != nil {
		return fmt.Errorf("loading scoring tables: %w", err)
	}
	tables = holder

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logFatal logs an error and exits the program.
func logFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}
