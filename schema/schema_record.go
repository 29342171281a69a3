package schema

// FlatRecord is the one-line-per-artifact output contract consumed by
// downstream tooling. Every configured metric appears with its score and
// latency; a not-applicable metric serializes as -1, a faulted one as 0.
type FlatRecord struct {
	Name     string `json:"name"`
	Category string `json:"category"`

	NetScore        float64 `json:"net_score"`
	NetScoreLatency int64   `json:"net_score_latency"`

	RampUpTime        float64 `json:"ramp_up_time"`
	RampUpTimeLatency int64   `json:"ramp_up_time_latency"`

	BusFactor        float64 `json:"bus_factor"`
	BusFactorLatency int64   `json:"bus_factor_latency"`

	PerformanceClaims        float64 `json:"performance_claims"`
	PerformanceClaimsLatency int64   `json:"performance_claims_latency"`

	License        float64 `json:"license"`
	LicenseLatency int64   `json:"license_latency"`

	SizeScore        SizeBreakdown `json:"size_score"`
	SizeScoreLatency int64         `json:"size_score_latency"`

	DatasetAndCodeScore        float64 `json:"dataset_and_code_score"`
	DatasetAndCodeScoreLatency int64   `json:"dataset_and_code_score_latency"`

	DatasetQuality        float64 `json:"dataset_quality"`
	DatasetQualityLatency int64   `json:"dataset_quality_latency"`

	CodeQuality        float64 `json:"code_quality"`
	CodeQualityLatency int64   `json:"code_quality_latency"`

	Reproducibility        float64 `json:"reproducibility"`
	ReproducibilityLatency int64   `json:"reproducibility_latency"`

	Reviewedness        float64 `json:"reviewedness"`
	ReviewednessLatency int64   `json:"reviewedness_latency"`
}

// NewFlatRecord flattens a score report into the output contract.
func NewFlatRecord(report *ScoreReport) FlatRecord {
	rec := FlatRecord{
		Name:            report.Name,
		Category:        string(ModelKind),
		NetScore:        report.NetScore,
		NetScoreLatency: report.NetLatency,
	}
	for name, res := range report.Results {
		score := res.ReportedScore()
		switch name {
		case MetricRampUpTime:
			rec.RampUpTime, rec.RampUpTimeLatency = score, res.Latency
		case MetricBusFactor:
			rec.BusFactor, rec.BusFactorLatency = score, res.Latency
		case MetricPerformanceClaims:
			rec.PerformanceClaims, rec.PerformanceClaimsLatency = score, res.Latency
		case MetricLicense:
			rec.License, rec.LicenseLatency = score, res.Latency
		case MetricSizeScore:
			if res.Breakdown != nil {
				rec.SizeScore = *res.Breakdown
			}
			rec.SizeScoreLatency = res.Latency
		case MetricDatasetAndCode:
			rec.DatasetAndCodeScore, rec.DatasetAndCodeScoreLatency = score, res.Latency
		case MetricDatasetQuality:
			rec.DatasetQuality, rec.DatasetQualityLatency = score, res.Latency
		case MetricCodeQuality:
			rec.CodeQuality, rec.CodeQualityLatency = score, res.Latency
		case MetricReproducibility:
			rec.Reproducibility, rec.ReproducibilityLatency = score, res.Latency
		case MetricReviewedness:
			rec.Reviewedness, rec.ReviewednessLatency = score, res.Latency
		}
	}
	return rec
}
