package core

import (
	"context"
	"fmt"

	"github.com/modelgate/modelgate/schema"
)

// Evaluator computes one quality dimension from an artifact context.
// Implementations return schema.NA() when their precondition is unmet;
// any returned error (or panic, or budget overrun) is converted by the
// orchestrator into a faulted result with score zero.
type Evaluator interface {
	Name() schema.MetricName
	Evaluate(ctx context.Context, art *ArtifactContext) (schema.MetricValue, error)
}

// Evaluators returns the fixed evaluator set in canonical order.
// Metric registration is static: the set is closed at compile time and
// weight tables are validated against it at load.
func Evaluators() []Evaluator {
	return []Evaluator{
		&RampUpTimeEvaluator{},
		&BusFactorEvaluator{},
		&PerformanceClaimsEvaluator{},
		&LicenseEvaluator{},
		&SizeScoreEvaluator{},
		&DatasetAndCodeEvaluator{},
		&DatasetQualityEvaluator{},
		&CodeQualityEvaluator{},
		&ReproducibilityEvaluator{},
		&ReviewednessEvaluator{},
	}
}

// ValidateTables checks that every weighted or thresholded metric has a
// registered evaluator, so misconfiguration is rejected before any
// scoring request is served.
func ValidateTables(evaluators []Evaluator, weights schema.WeightTable, thresholds schema.ThresholdTable) error {
	registered := make(map[schema.MetricName]bool, len(evaluators))
	for _, ev := range evaluators {
		registered[ev.Name()] = true
	}
	for name := range weights {
		if !registered[name] {
			return fmt.Errorf("weight table metric %q has no registered evaluator", name)
		}
	}
	for name := range thresholds {
		if !registered[name] {
			return fmt.Errorf("threshold table metric %q has no registered evaluator", name)
		}
	}
	return nil
}
