package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modelgate/modelgate/internal/registry"
)

// migrateCmd manages the registry database schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run registry database migrations",
	Long: `Bring the registry database schema to a target version.

Examples:
  # Migrate to the latest version
  modelgate migrate

  # Roll back to the initial state
  modelgate migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		target := viper.GetInt("target-version")
		if err := registry.Migrate(cfg.RegistryPath, target); err != nil {
			logFatal("Migration failed", err)
		}
		cmd.Printf("Registry %s migrated (target version %d)\n", cfg.RegistryPath, target)
	},
}
