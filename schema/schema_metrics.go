package schema

import "time"

// MetricName identifies one quality dimension.
type MetricName string

// All metric names. The order of AllMetrics is the canonical reporting order.
const (
	MetricRampUpTime        MetricName = "ramp_up_time"
	MetricBusFactor         MetricName = "bus_factor"
	MetricPerformanceClaims MetricName = "performance_claims"
	MetricLicense           MetricName = "license"
	MetricSizeScore         MetricName = "size_score"
	MetricDatasetAndCode    MetricName = "dataset_and_code_score"
	MetricDatasetQuality    MetricName = "dataset_quality"
	MetricCodeQuality       MetricName = "code_quality"
	MetricReproducibility   MetricName = "reproducibility"
	MetricReviewedness      MetricName = "reviewedness"
)

// AllMetrics lists every configured metric in canonical order.
var AllMetrics = []MetricName{
	MetricRampUpTime,
	MetricBusFactor,
	MetricPerformanceClaims,
	MetricLicense,
	MetricSizeScore,
	MetricDatasetAndCode,
	MetricDatasetQuality,
	MetricCodeQuality,
	MetricReproducibility,
	MetricReviewedness,
}

// GateMetrics lists the gated metrics in gate evaluation order. The
// composite size breakdown is reported but never gated, so it is absent.
var GateMetrics = []MetricName{
	MetricReproducibility,
	MetricCodeQuality,
	MetricLicense,
	MetricDatasetQuality,
	MetricRampUpTime,
	MetricBusFactor,
	MetricPerformanceClaims,
	MetricDatasetAndCode,
	MetricReviewedness,
}

// KnownMetric reports whether name is a configured metric.
func KnownMetric(name MetricName) bool {
	for _, m := range AllMetrics {
		if m == name {
			return true
		}
	}
	return false
}

// Outcome is the three-way result state of one evaluator run.
type Outcome int

// Evaluator outcomes. A NotApplicable metric is excluded from net score
// and gate aggregation; a Faulted metric counts as score zero.
const (
	Applicable Outcome = iota
	NotApplicable
	Faulted
)

// String returns the outcome label used in logs and annotations.
func (o Outcome) String() string {
	switch o {
	case NotApplicable:
		return "not_applicable"
	case Faulted:
		return "faulted"
	default:
		return "applicable"
	}
}

// SizeBreakdown is the per-device composite produced by the size metric.
type SizeBreakdown struct {
	RaspberryPi float64 `json:"raspberry_pi"`
	JetsonNano  float64 `json:"jetson_nano"`
	DesktopPC   float64 `json:"desktop_pc"`
	AWSServer   float64 `json:"aws_server"`
}

// MetricValue is what an evaluator returns on success. Composite values
// carry a breakdown and are excluded from net score and gate checks.
type MetricValue struct {
	Score         float64
	NotApplicable bool
	Composite     bool
	Breakdown     *SizeBreakdown
}

// Value wraps a plain score in [0,1].
func Value(score float64) MetricValue {
	return MetricValue{Score: score}
}

// NA marks the metric's precondition as unmet for this artifact.
func NA() MetricValue {
	return MetricValue{NotApplicable: true}
}

// Composite wraps a breakdown score reported outside the aggregate.
func Composite(score float64, breakdown *SizeBreakdown) MetricValue {
	return MetricValue{Score: score, Composite: true, Breakdown: breakdown}
}

// MetricResult is the settled result of one evaluator task.
type MetricResult struct {
	Name      MetricName
	Outcome   Outcome
	Score     float64 // In [0,1]; zero when Faulted; undefined when NotApplicable
	Latency   int64   // Wall time in milliseconds
	Fault     string  // Annotation set only when Faulted
	Composite bool
	Breakdown *SizeBreakdown
}

// ReportedScore flattens the three-way outcome back onto the numeric
// wire contract: NotApplicable is -1, Faulted is 0.
func (r MetricResult) ReportedScore() float64 {
	switch r.Outcome {
	case NotApplicable:
		return -1
	case Faulted:
		return 0
	default:
		return r.Score
	}
}

// ScoreReport is the fan-in product of one scoring pass.
type ScoreReport struct {
	Name       string // Model display name
	Results    map[MetricName]MetricResult
	NetScore   float64
	NetLatency int64 // Total wall time in milliseconds, fan-out to fan-in
	ScoredAt   time.Time
}

// Result returns the settled result for name and whether it exists.
func (r *ScoreReport) Result(name MetricName) (MetricResult, bool) {
	res, ok := r.Results[name]
	return res, ok
}
