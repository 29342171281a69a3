package core

import (
	"context"
	"strings"

	"github.com/modelgate/modelgate/schema"
)

var (
	datasetLinkIndicators = []string{
		"dataset:", "training data", "train on", "trained on",
		"huggingface.co/datasets/", "dataset link", "data source",
	}
	exampleCodeIndicators = []string{
		"training script", "train.py", "fine-tune", "finetune",
		"example code", "training code", "github.com/", "colab",
		"jupyter", "notebook", "script", "example:", "tutorial",
	}
)

// DatasetAndCodeEvaluator scores whether the artifact links both its
// training data and runnable example code.
type DatasetAndCodeEvaluator struct{}

// Name implements the Evaluator interface.
func (e *DatasetAndCodeEvaluator) Name() schema.MetricName { return schema.MetricDatasetAndCode }

// Evaluate returns 1.0 with both linked, 0.5 with one, 0.1 with neither.
// Link evidence comes from the locator triplet, the readme, or the hub
// file listing, in that order.
func (e *DatasetAndCodeEvaluator) Evaluate(ctx context.Context, art *ArtifactContext) (schema.MetricValue, error) {
	readme, _ := art.Readme(ctx)
	lower := strings.ToLower(readme)

	hasDataset := len(art.Datasets()) > 0
	if !hasDataset && lower != "" {
		hasDataset = containsAny(lower, datasetLinkIndicators)
	}
	if !hasDataset {
		if info, err := art.Metadata(ctx); err == nil && info != nil && info.HasModelIndex {
			hasDataset = true
		}
	}

	_, hasCode := art.CodeRepo(ctx)
	if !hasCode && lower != "" {
		hasCode = containsAny(lower, exampleCodeIndicators)
	}
	if !hasCode {
		if info, err := art.Metadata(ctx); err == nil && info != nil {
			hasCode = hasScriptFiles(info.Files)
		}
	}

	switch {
	case hasDataset && hasCode:
		return schema.Value(1.0), nil
	case hasDataset || hasCode:
		return schema.Value(0.5), nil
	default:
		return schema.Value(0.1), nil
	}
}

func hasScriptFiles(files []schema.FileEntry) bool {
	for _, f := range files {
		lower := strings.ToLower(f.Path)
		if strings.HasSuffix(lower, ".py") || strings.HasSuffix(lower, ".ipynb") ||
			strings.Contains(lower, "train") || strings.Contains(lower, "example") {
			return true
		}
	}
	return false
}
