package schema

// FailedMetric is one itemized gate failure.
type FailedMetric struct {
	Metric    MetricName `json:"metric"`
	Score     float64    `json:"score"`
	Threshold float64    `json:"threshold"`
	Gap       float64    `json:"gap"` // score - threshold, negative on failure
}

// GateVerdict is the admission decision for one score report.
// Failing is ordered by the gate evaluation order and is empty iff Passed.
type GateVerdict struct {
	Passed  bool           `json:"passed"`
	Failing []FailedMetric `json:"failing_metrics"`
}
