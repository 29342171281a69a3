package core

import (
	"context"
	"strings"

	"github.com/modelgate/modelgate/schema"
)

var (
	sizeFieldIndicators = []string{
		"size", "samples", "examples", "instances", "records", "entries",
		"rows", "datapoints", "mb", "gb", "kb", "million", "thousand",
	}
	benchmarkFieldIndicators = []string{
		"benchmark", "evaluation", "baseline", "performance", "accuracy",
		"f1", "bleu", "rouge", "glue", "squad", "superglue", "results",
	}
)

// DatasetQualityEvaluator rates the documentation quality of the linked
// dataset: description, size/samples, license and benchmark references,
// a quarter point each.
type DatasetQualityEvaluator struct{}

// Name implements the Evaluator interface.
func (e *DatasetQualityEvaluator) Name() schema.MetricName { return schema.MetricDatasetQuality }

// Evaluate inspects the linked hub dataset's card; without a linked
// dataset the model readme stands in, and with no evidence at all a
// conservative default of 0.3 applies.
func (e *DatasetQualityEvaluator) Evaluate(ctx context.Context, art *ArtifactContext) (schema.MetricValue, error) {
	if !hasHubDataset(art.Datasets()) {
		if readme, err := art.Readme(ctx); err == nil && readme != "" {
			return schema.Value(datasetFieldScore(readme, nil)), nil
		}
		return schema.Value(0.3), nil
	}

	card, err := art.DatasetReadme(ctx)
	if err != nil || card == "" {
		// Linked but unreachable documentation scores nothing.
		return schema.Value(0.0), nil
	}
	info, _ := art.DatasetInfo(ctx)
	return schema.Value(datasetFieldScore(card, info)), nil
}

func hasHubDataset(datasets []schema.ArtifactRef) bool {
	for _, ds := range datasets {
		if ds.Platform == schema.HubPlatform {
			return true
		}
	}
	return false
}

// datasetFieldScore checks the four documented-field criteria.
func datasetFieldScore(card string, info *schema.DatasetInfo) float64 {
	lower := strings.ToLower(card)
	var score float64

	// 1. Description
	if strings.Contains(lower, "description") || strings.Contains(lower, "overview") ||
		strings.Contains(lower, "dataset") || len(card) > 300 {
		score += 0.25
	}

	// 2. Size / sample counts
	if containsAny(lower, sizeFieldIndicators) {
		score += 0.25
	}

	// 3. License
	licenseFound := strings.Contains(lower, "license")
	if !licenseFound && info != nil {
		for _, tag := range info.Tags {
			if strings.Contains(tag, "license:") {
				licenseFound = true
				break
			}
		}
	}
	if licenseFound {
		score += 0.25
	}

	// 4. Benchmark references
	if containsAny(lower, benchmarkFieldIndicators) {
		score += 0.25
	}

	return score
}
