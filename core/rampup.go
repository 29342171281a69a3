package core

import (
	"context"
	"strings"

	"github.com/modelgate/modelgate/schema"
)

// Indicator keyword sets for the ramp-up criteria.
var (
	installIndicators = []string{
		"install", "pip install", "conda install", "npm install",
		"yarn install", "setup", "installation", "getting started",
		"requirements", "dependencies",
	}
	trainingIndicators = []string{
		"training", "train", "fine-tuning", "fine tuning", "finetune",
		"evaluation", "eval", "benchmark", "test", "validate",
	}
	usageIndicators = []string{
		"usage", "example", "how to use", "quickstart", "tutorial",
		"from transformers", "import", "model.", "pipeline",
		"```python", "```py", "api", "inference",
	}
)

// RampUpTimeEvaluator scores how quickly a newcomer can get the artifact
// running, as a heuristic over documentation completeness.
type RampUpTimeEvaluator struct{}

// Name implements the Evaluator interface.
func (e *RampUpTimeEvaluator) Name() schema.MetricName { return schema.MetricRampUpTime }

// Evaluate checks four documentation criteria worth 0.25 each, with a
// 0.1 bonus for shipped examples or notebooks. No readme floors at 0.1.
func (e *RampUpTimeEvaluator) Evaluate(ctx context.Context, art *ArtifactContext) (schema.MetricValue, error) {
	readme, err := art.Readme(ctx)
	if err != nil || readme == "" {
		return schema.Value(0.1), nil
	}
	lower := strings.ToLower(readme)

	score := 0.25 // readme present
	if containsAny(lower, installIndicators) {
		score += 0.25
	}
	if containsAny(lower, trainingIndicators) {
		score += 0.25
	}
	if containsAny(lower, usageIndicators) {
		score += 0.25
	}

	if info, err := art.Metadata(ctx); err == nil && info != nil && hasExampleFiles(info.Files) {
		score += 0.1
	}
	return schema.Value(min(1.0, score)), nil
}

func hasExampleFiles(files []schema.FileEntry) bool {
	for _, f := range files {
		lower := strings.ToLower(f.Path)
		if strings.Contains(lower, "example") || strings.Contains(lower, "tutorial") ||
			strings.Contains(lower, "notebook") || strings.HasSuffix(lower, ".ipynb") {
			return true
		}
	}
	return false
}

func containsAny(text string, indicators []string) bool {
	for _, indicator := range indicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}
