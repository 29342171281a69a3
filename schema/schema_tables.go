package schema

import "fmt"

// WeightTable maps metric name to its nonnegative aggregation weight.
// Tables are immutable after load; reloading swaps the whole table.
type WeightTable map[MetricName]float64

// ThresholdTable maps metric name to its minimum admissible score.
// It may cover a different subset of metrics than the weight table.
type ThresholdTable map[MetricName]float64

// Validate rejects unknown metric names and negative weights so that a
// misconfigured table fails at load time, before any request is served.
func (w WeightTable) Validate() error {
	for name, weight := range w {
		if !KnownMetric(name) {
			return fmt.Errorf("weight table lists unknown metric %q", name)
		}
		if weight < 0 {
			return fmt.Errorf("weight for %q must be nonnegative (got %v)", name, weight)
		}
	}
	return nil
}

// Validate rejects unknown metric names and thresholds outside [0,1].
func (t ThresholdTable) Validate() error {
	for name, threshold := range t {
		if !KnownMetric(name) {
			return fmt.Errorf("threshold table lists unknown metric %q", name)
		}
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("threshold for %q must be in [0,1] (got %v)", name, threshold)
		}
	}
	return nil
}

// DefaultWeights returns the stock aggregation weights. The composite
// size metric carries no weight; it is reported outside the aggregate.
func DefaultWeights() WeightTable {
	return WeightTable{
		MetricRampUpTime:        0.15,
		MetricBusFactor:         0.10,
		MetricPerformanceClaims: 0.15,
		MetricLicense:           0.10,
		MetricDatasetAndCode:    0.15,
		MetricDatasetQuality:    0.10,
		MetricCodeQuality:       0.10,
		MetricReproducibility:   0.10,
		MetricReviewedness:      0.10,
	}
}

// DefaultThresholds returns the stock admission thresholds. Every listed
// metric must score at or above its threshold unless it is not applicable.
func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		MetricRampUpTime:        0.5,
		MetricBusFactor:         0.5,
		MetricPerformanceClaims: 0.5,
		MetricLicense:           0.5,
		MetricDatasetAndCode:    0.5,
		MetricDatasetQuality:    0.5,
		MetricCodeQuality:       0.5,
		MetricReproducibility:   0.5,
		MetricReviewedness:      0.5,
	}
}
