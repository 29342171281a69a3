package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modelgate/modelgate/core"
	"github.com/modelgate/modelgate/internal/registry"
)

// auditsCmd inspects the stored admission history.
var auditsCmd = &cobra.Command{
	Use:   "audits [model-name]",
	Short: "Show stored admission audits",
	Long: `List recent admission audits from the registry, newest first, or
show the latest audit for one model name.

Examples:
  # Recent history
  modelgate audits

  # Latest decision for one model
  modelgate audits org/model`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		if err := runAudits(args); err != nil {
			logFatal("Audit lookup failed", err)
		}
	},
}

func runAudits(args []string) error {
	store, err := registry.Open(cfg.RegistryPath)
	if err != nil {
		return fmt.Errorf("opening registry: %w", err)
	}
	defer func() { _ = store.Close() }()

	var audits []*core.Audit
	if len(args) == 1 {
		audit, err := store.LatestAudit(rootCtx, args[0])
		if errors.Is(err, registry.ErrAuditNotFound) {
			return fmt.Errorf("no audit stored for %s", args[0])
		}
		if err != nil {
			return err
		}
		audits = []*core.Audit{audit}
	} else {
		if audits, err = store.ListAudits(rootCtx, viper.GetInt("limit")); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Name", "Artifact ID", "Net Score", "Passed", "Created"})

	var data [][]string
	for _, a := range audits {
		data = append(data, []string{
			a.Name,
			a.ArtifactID,
			strconv.FormatFloat(a.Record.NetScore, 'f', 2, 64),
			strconv.FormatBool(a.Verdict.Passed),
			a.CreatedAt.Format(time.RFC3339),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
