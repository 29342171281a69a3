package core

import (
	"context"
	"regexp"
	"strings"

	"github.com/modelgate/modelgate/schema"
)

// approvedLicenses are fully compatible with commercial redistribution.
var approvedLicenses = []string{
	"apache-2.0", "mit", "bsd-3-clause", "bsd-2-clause", "isc", "unlicense",
}

// restrictiveTerms mark copyleft or proprietary licensing.
var restrictiveTerms = []string{
	"gpl", "agpl", "commercial", "proprietary", "all rights reserved",
}

var licenseSectionPattern = regexp.MustCompile(`(?i)#+\s*licen[cs]e\s*\n+\s*([^\n]+)`)

// LicenseEvaluator matches the declared license against an approved set.
type LicenseEvaluator struct{}

// Name implements the Evaluator interface.
func (e *LicenseEvaluator) Name() schema.MetricName { return schema.MetricLicense }

// Evaluate prefers the hub's license tag, falling back to a readme
// license section. Approved scores 1.0, restrictive 0.7, unknown 0.5
// and an undeclared license 0.3.
func (e *LicenseEvaluator) Evaluate(ctx context.Context, art *ArtifactContext) (schema.MetricValue, error) {
	var declared string

	if info, err := art.Metadata(ctx); err == nil && info != nil {
		for _, tag := range info.Tags {
			if after, ok := strings.CutPrefix(tag, "license:"); ok {
				declared = after
				break
			}
		}
	}
	if declared == "" {
		if readme, err := art.Readme(ctx); err == nil {
			if match := licenseSectionPattern.FindStringSubmatch(readme); match != nil {
				declared = strings.TrimSpace(match[1])
			}
		}
	}

	if declared == "" {
		return schema.Value(0.3), nil
	}

	lower := strings.ToLower(declared)
	for _, approved := range approvedLicenses {
		if strings.Contains(lower, approved) {
			return schema.Value(1.0), nil
		}
	}
	for _, term := range restrictiveTerms {
		if strings.Contains(lower, term) {
			return schema.Value(0.7), nil
		}
	}
	return schema.Value(0.5), nil
}
