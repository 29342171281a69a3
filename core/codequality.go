package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelgate/modelgate/schema"
)

// maxScannedSources bounds the static scan for large repositories.
const maxScannedSources = 20

// CodeQualityEvaluator rates the linked repository through a lightweight
// static scan plus structural signals (tests directory, CI config).
type CodeQualityEvaluator struct{}

// Name implements the Evaluator interface.
func (e *CodeQualityEvaluator) Name() schema.MetricName { return schema.MetricCodeQuality }

// Evaluate scores clamp(1 - errors/50) over scanned sources, bumped 0.1
// for a tests directory and 0.1 for CI configuration. Without a linked
// repository a medium default of 0.4 applies.
func (e *CodeQualityEvaluator) Evaluate(ctx context.Context, art *ArtifactContext) (schema.MetricValue, error) {
	if _, ok := art.CodeRepo(ctx); !ok {
		return schema.Value(0.4), nil
	}
	history, err := art.History(ctx)
	if err != nil {
		return schema.Value(0.4), nil
	}

	errorCount := scanSources(history.Dir)
	score := clamp01(1.0 - float64(errorCount)/50.0)

	if hasDir(history.Dir, "tests") || hasDir(history.Dir, "test") {
		score += 0.1
	}
	if hasCIConfig(history.Dir) {
		score += 0.1
	}
	return schema.Value(min(1.0, score)), nil
}

// scanSources counts sources with obvious well-formedness defects.
func scanSources(root string) int {
	var sources []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".py" || ext == ".sh" {
			sources = append(sources, path)
		}
		return nil
	})

	errors := 0
	for i, path := range sources {
		if i >= maxScannedSources {
			break
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if !wellFormedSnippet(string(data)) {
			errors++
		}
	}
	return errors
}

func hasDir(root, name string) bool {
	info, err := os.Stat(filepath.Join(root, name))
	return err == nil && info.IsDir()
}

func hasCIConfig(root string) bool {
	candidates := []string{
		filepath.Join(".github", "workflows"),
		"ci",
		".travis.yml",
		".circleci",
		"azure-pipelines.yml",
	}
	for _, c := range candidates {
		if _, err := os.Stat(filepath.Join(root, c)); err == nil {
			return true
		}
	}
	return false
}
