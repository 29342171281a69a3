package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the modelgate version and build details",
	Long: `Print the release version, the commit it was built from, the build
timestamp and the Go runtime. Include this output when reporting scoring
discrepancies, since weight and threshold defaults can change between
releases.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("modelgate %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
