// Package cmd defines the command-line interface for modelgate.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modelgate/modelgate/internal"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(auditsCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("budget", "", "Per-metric time budget (e.g. 60s, 2m); defaults to 60s")
	rootCmd.PersistentFlags().Int("clone-depth", internal.DefaultCloneDepth, "Shallow clone depth for repository analysis")
	rootCmd.PersistentFlags().IntP("workers", "w", internal.DefaultWorkers, "Number of artifacts scored concurrently")
	rootCmd.PersistentFlags().String("hub-url", internal.DefaultHubBaseURL, "Model hub API endpoint")
	rootCmd.PersistentFlags().String("registry", internal.DefaultRegistryPath, "Path to the SQLite registry database")
	rootCmd.PersistentFlags().String("tables", "", "Path to a YAML file with metric weights and gate thresholds")
	rootCmd.PersistentFlags().StringP("output", "o", internal.NDJSONOut, "Output format: ndjson or table")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		logFatal("Error binding root flags", err)
	}

	// Bind all flags of migrateCmd to Viper
	migrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(migrateCmd.Flags()); err != nil {
		logFatal("Error binding migrate flags", err)
	}

	// Bind all flags of auditsCmd to Viper
	auditsCmd.Flags().IntP("limit", "l", 20, "Number of audits to display")
	if err := viper.BindPFlags(auditsCmd.Flags()); err != nil {
		logFatal("Error binding audits flags", err)
	}
}
