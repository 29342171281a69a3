package core

import (
	"context"

	"github.com/modelgate/modelgate/schema"
)

// BusFactorEvaluator scores contributor diversity and community
// engagement: how much the artifact depends on a single maintainer.
type BusFactorEvaluator struct{}

// Name implements the Evaluator interface.
func (e *BusFactorEvaluator) Name() schema.MetricName { return schema.MetricBusFactor }

// Evaluate blends hub engagement (weight 0.6, capped at 0.8) with a
// contributor-count ladder from version-control history (weight 0.4).
// Without hub metadata the history carries the full weight.
func (e *BusFactorEvaluator) Evaluate(ctx context.Context, art *ArtifactContext) (schema.MetricValue, error) {
	var total float64
	weightHub, weightGit := 0.6, 0.4

	info, err := art.Metadata(ctx)
	if err != nil || info == nil {
		weightGit = 1.0
	} else {
		total += engagementScore(info) * weightHub
	}

	var gitScore float64
	if _, ok := art.CodeRepo(ctx); ok {
		if history, err := art.History(ctx); err == nil {
			gitScore = contributorLadder(history.UniqueAuthors())
		}
	}
	total += gitScore * weightGit

	return schema.Value(min(1.0, total)), nil
}

// contributorLadder saturates above three distinct authors.
func contributorLadder(authors int) float64 {
	switch {
	case authors >= 3:
		return 0.8
	case authors == 2:
		return 0.6
	case authors == 1:
		return 0.5
	default:
		return 0.1
	}
}

// engagementScore rates downloads, likes and recent activity, capped at
// 0.8 so hub popularity alone never yields a perfect bus factor.
func engagementScore(info *schema.ModelInfo) float64 {
	var score float64

	switch {
	case info.Downloads > 10000:
		score += 0.4
	case info.Downloads > 1000:
		score += 0.3
	case info.Downloads > 100:
		score += 0.2
	case info.Downloads > 10:
		score += 0.1
	}

	switch {
	case info.Likes > 100:
		score += 0.3
	case info.Likes > 50:
		score += 0.2
	case info.Likes > 10:
		score += 0.1
	case info.Likes > 0:
		score += 0.05
	}

	if !info.LastModified.IsZero() {
		score += 0.1
	}
	return min(0.8, score)
}
