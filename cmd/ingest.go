package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/core"
	"github.com/modelgate/modelgate/internal"
	"github.com/modelgate/modelgate/internal/gitscan"
	"github.com/modelgate/modelgate/internal/hub"
	"github.com/modelgate/modelgate/internal/registry"
	"github.com/modelgate/modelgate/schema"
)

// ingestCmd scores one artifact and admits or rejects it.
var ingestCmd = &cobra.Command{
	Use:   "ingest <model-url> [dataset-url] [code-url]",
	Short: "Score one model and gate its admission into the registry",
	Long: `Score a single model and apply the quality gate. Admission requires
every gated metric to reach its threshold; metrics without evidence are
exempt. The verdict and full score record are persisted to the registry
either way, and rejection exits non-zero so pipelines can block on it.

Examples:
  # Gate a model on its own
  modelgate ingest https://huggingface.co/google/gemma-2b

  # Attach the training dataset and code for stronger evidence
  modelgate ingest https://huggingface.co/google/gemma-2b \
    https://huggingface.co/datasets/c4 https://github.com/google/gemma`,
	Args:    cobra.RangeArgs(1, 3),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		admitted, err := runIngest(args)
		if err != nil {
			logFatal("Ingest failed", err)
		}
		if !admitted {
			os.Exit(1)
		}
	},
}

// ingestTriplet binds the command arguments into one triplet. Unlike the
// batch file form, dataset and code locators may appear on either side of
// the model, so every non-model argument is attached directly.
func ingestTriplet(urls []string) (schema.Triplet, error) {
	var triplet schema.Triplet
	for _, raw := range urls {
		ref, err := internal.ParseArtifactURL(raw)
		if err != nil {
			return schema.Triplet{}, err
		}
		switch ref.Kind {
		case schema.ModelKind:
			if !triplet.Model.IsZero() {
				return schema.Triplet{}, fmt.Errorf("ingest takes exactly one model locator")
			}
			triplet.Model = ref
		case schema.DatasetKind:
			triplet.Datasets = append(triplet.Datasets, ref)
		case schema.CodeKind:
			triplet.Code = append(triplet.Code, ref)
		}
	}
	if triplet.Model.IsZero() {
		return schema.Triplet{}, fmt.Errorf("ingest requires a model locator")
	}
	return triplet, nil
}

func runIngest(urls []string) (bool, error) {
	triplet, err := ingestTriplet(urls)
	if err != nil {
		return false, err
	}

	scorer, err := core.NewScorer(tables.Load().Weights, core.WithBudget(cfg.Budget))
	if err != nil {
		return false, err
	}
	art, err := core.BuildContext(triplet, hub.NewClient(cfg.HubBaseURL), gitscan.NewLocalClient(), core.WithCloneDepth(cfg.CloneDepth))
	if err != nil {
		return false, err
	}
	defer art.Close()

	// Bring the registry schema up to date before writing to it.
	if err := registry.Migrate(cfg.RegistryPath, -1); err != nil {
		return false, fmt.Errorf("migrating registry: %w", err)
	}
	store, err := registry.Open(cfg.RegistryPath)
	if err != nil {
		return false, fmt.Errorf("opening registry: %w", err)
	}
	defer func() { _ = store.Close() }()

	audit, err := core.Ingest(rootCtx, scorer, art, tables.Load().Thresholds, store)
	if err != nil {
		return false, err
	}

	if err := internal.WriteVerdict(os.Stdout, audit.Name, &audit.Verdict); err != nil {
		return false, err
	}
	if audit.Verdict.Passed {
		fmt.Printf("artifact_id: %s\n", audit.ArtifactID)
	}
	return audit.Verdict.Passed, nil
}
