package core

import (
	"context"

	"github.com/modelgate/modelgate/schema"
)

// Deployment tier capacities in bytes.
const (
	gigabyte            = int64(1) << 30
	raspberryPiCapacity = 1 * gigabyte
	jetsonNanoCapacity  = 4 * gigabyte
	desktopPCCapacity   = 16 * gigabyte
	awsServerCapacity   = 64 * gigabyte
)

// SizeScoreEvaluator rates deployment feasibility of the artifact's
// weight files per hardware tier. It is a composite metric: the per-tier
// breakdown is reported alongside the other metrics but excluded from
// net score and gate aggregation.
type SizeScoreEvaluator struct{}

// Name implements the Evaluator interface.
func (e *SizeScoreEvaluator) Name() schema.MetricName { return schema.MetricSizeScore }

// Evaluate sums weight-file bytes from the hub file listing and scores
// each tier with a linear falloff from fitting comfortably (1.0) to
// twice the tier capacity (0.0). Without metadata the size is unknown
// and the metric is not applicable.
func (e *SizeScoreEvaluator) Evaluate(ctx context.Context, art *ArtifactContext) (schema.MetricValue, error) {
	info, err := art.Metadata(ctx)
	if err != nil || info == nil {
		return schema.NA(), nil
	}
	size := info.WeightFileBytes()
	if size == 0 {
		// No recognizable weight files; assume any tier can host it.
		size = 1
	}

	breakdown := &schema.SizeBreakdown{
		RaspberryPi: tierScore(size, raspberryPiCapacity),
		JetsonNano:  tierScore(size, jetsonNanoCapacity),
		DesktopPC:   tierScore(size, desktopPCCapacity),
		AWSServer:   tierScore(size, awsServerCapacity),
	}
	// Headline score is the average tier feasibility.
	avg := (breakdown.RaspberryPi + breakdown.JetsonNano + breakdown.DesktopPC + breakdown.AWSServer) / 4
	return schema.Composite(avg, breakdown), nil
}

// tierScore is 1.0 up to half the capacity, then falls linearly to 0.0
// at double the capacity.
func tierScore(size, capacity int64) float64 {
	half := float64(capacity) / 2
	if float64(size) <= half {
		return 1.0
	}
	limit := float64(capacity) * 2
	if float64(size) >= limit {
		return 0.0
	}
	return clamp01((limit - float64(size)) / (limit - half))
}
