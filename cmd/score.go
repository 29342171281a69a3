package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/modelgate/modelgate/core"
	"github.com/modelgate/modelgate/internal"
	"github.com/modelgate/modelgate/internal/gitscan"
	"github.com/modelgate/modelgate/internal/hub"
	"github.com/modelgate/modelgate/schema"
)

// scoreCmd evaluates every artifact listed in a locator file.
var scoreCmd = &cobra.Command{
	Use:   "score <url-file>",
	Short: "Score the artifacts listed in a locator file",
	Long: `Read artifact locators from a file and score each model along every
quality dimension.

The file holds one locator per line, or several per line separated by
commas. Dataset and code locators attach to the model they precede or
share naming with. Blank lines and lines starting with '#' are skipped.

Results are written to stdout in input order, one NDJSON record per
model by default.

Examples:
  # Score a batch of models
  modelgate score artifacts.txt

  # Human-readable tables with a tighter per-metric budget
  modelgate score artifacts.txt --output table --budget 30s

  # Custom weights
  modelgate score artifacts.txt --tables scoring.yaml`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		if err := runScore(args[0]); err != nil {
			logFatal("Scoring failed", err)
		}
	},
}

// runScore drives the batch: parse locators, score models concurrently,
// then emit results in input order.
func runScore(urlFile string) error {
	urls, err := readLocatorFile(urlFile)
	if err != nil {
		return err
	}
	triplets, err := internal.BuildTriplets(urls)
	if err != nil {
		return err
	}
	if len(triplets) == 0 {
		return fmt.Errorf("no model locators found in %s", urlFile)
	}

	scorer, err := core.NewScorer(tables.Load().Weights, core.WithBudget(cfg.Budget))
	if err != nil {
		return err
	}
	hubClient := hub.NewClient(cfg.HubBaseURL)
	gitClient := gitscan.NewLocalClient()

	reports := make([]*schema.ScoreReport, len(triplets))

	g, gctx := errgroup.WithContext(rootCtx)
	g.SetLimit(cfg.Workers)
	for i, triplet := range triplets {
		g.Go(func() error {
			art, err := core.BuildContext(triplet, hubClient, gitClient, core.WithCloneDepth(cfg.CloneDepth))
			if err != nil {
				return fmt.Errorf("building context for %s: %w", triplet.Model.URL, err)
			}
			defer art.Close()
			reports[i] = scorer.Score(gctx, art)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, report := range reports {
		if cfg.Output == internal.TableOut {
			if err := internal.WriteReportTable(os.Stdout, report); err != nil {
				return err
			}
			continue
		}
		rec := schema.NewFlatRecord(report)
		if err := internal.WriteRecord(os.Stdout, &rec); err != nil {
			return err
		}
	}
	return nil
}

// readLocatorFile reads artifact URLs from a file, preserving order.
// Lines may carry several comma-separated locators.
func readLocatorFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening locator file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Split(line, ",") {
			if field = strings.TrimSpace(field); field != "" {
				urls = append(urls, field)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading locator file: %w", err)
	}
	return urls, nil
}
