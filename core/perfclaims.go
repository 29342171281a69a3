package core

import (
	"context"
	"regexp"

	"github.com/modelgate/modelgate/schema"
)

// Patterns locating documentation sections that substantiate claims.
var sectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(eval(uation)? results?|metrics?)\b`),
	regexp.MustCompile(`(?i)\b(dataset|training data)\b`),
	regexp.MustCompile(`(?i)\b(method|approach|architecture)\b`),
	regexp.MustCompile(`(?i)\b(limitation|bias|risk)\b`),
	regexp.MustCompile(`(?i)\blicen[cs]e\b`),
}

var metricKeywordPattern = regexp.MustCompile(
	`(?i)\b(accuracy|f1|precision|recall|bleu|rouge|exact match|perplexity)\b`)

// PerformanceClaimsEvaluator scores how well performance claims are
// documented and structurally backed.
type PerformanceClaimsEvaluator struct{}

// Name implements the Evaluator interface.
func (e *PerformanceClaimsEvaluator) Name() schema.MetricName { return schema.MetricPerformanceClaims }

// Evaluate weighs readme evidence at 0.7 (sections 0.8, metric keywords
// 0.2 within it) and a structured model index at 0.3.
func (e *PerformanceClaimsEvaluator) Evaluate(ctx context.Context, art *ArtifactContext) (schema.MetricValue, error) {
	readme, _ := art.Readme(ctx)

	var textScore float64
	if readme != "" {
		present := 0
		for _, pat := range sectionPatterns {
			if pat.MatchString(readme) {
				present++
			}
		}
		textScore = float64(present) / float64(len(sectionPatterns)) * 0.8
		if metricKeywordPattern.MatchString(readme) {
			textScore += 0.2
		}
	}

	var indexScore float64
	if info, err := art.Metadata(ctx); err == nil && info != nil && info.HasModelIndex {
		indexScore = 1.0
	}

	return schema.Value(clamp01(0.7*textScore + 0.3*indexScore)), nil
}
