package core

import "github.com/modelgate/modelgate/schema"

// EvaluateGate compares a score report against an admission threshold
// table and produces a verdict with itemized diagnostics. It is a pure
// function: identical inputs always yield identical verdicts.
//
// A metric fails only when it is listed in the table and scores strictly
// below its threshold; a score equal to the threshold passes. Metrics
// absent from the table, not-applicable metrics and composite metrics
// are exempt. Faulted metrics count at score zero. All failures are
// collected in gate evaluation order, not just the first.
func EvaluateGate(report *schema.ScoreReport, thresholds schema.ThresholdTable) schema.GateVerdict {
	verdict := schema.GateVerdict{Passed: true, Failing: []schema.FailedMetric{}}

	for _, name := range schema.GateMetrics {
		threshold, listed := thresholds[name]
		if !listed {
			continue
		}
		res, ok := report.Result(name)
		if !ok || res.Outcome == schema.NotApplicable || res.Composite {
			continue
		}
		score := res.ReportedScore()
		if score < threshold {
			verdict.Failing = append(verdict.Failing, schema.FailedMetric{
				Metric:    name,
				Score:     score,
				Threshold: threshold,
				Gap:       score - threshold,
			})
		}
	}

	verdict.Passed = len(verdict.Failing) == 0
	return verdict
}
