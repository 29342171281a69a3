package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelgate/modelgate/schema"
)

// Audit is the finalized outcome of one admission attempt, handed to the
// persistence collaborator.
type Audit struct {
	ArtifactID string // Minted on admission, empty on rejection
	Name       string
	Record     schema.FlatRecord
	Verdict    schema.GateVerdict
	CreatedAt  time.Time
}

// AuditSink is the persistence collaborator. The core defines no storage
// format of its own.
type AuditSink interface {
	SaveAudit(ctx context.Context, audit *Audit) error
}

// Ingest scores the artifact, applies the quality gate and records the
// outcome. Rejection is a business outcome, not an error: the audit
// carries the itemized failing metrics either way. Only a sink failure
// returns an error.
func Ingest(ctx context.Context, scorer *Scorer, art *ArtifactContext, thresholds schema.ThresholdTable, sink AuditSink) (*Audit, error) {
	report := scorer.Score(ctx, art)
	verdict := EvaluateGate(report, thresholds)

	audit := &Audit{
		Name:      report.Name,
		Record:    schema.NewFlatRecord(report),
		Verdict:   verdict,
		CreatedAt: time.Now().UTC(),
	}
	if verdict.Passed {
		audit.ArtifactID = uuid.NewString()
	}

	if sink != nil {
		if err := sink.SaveAudit(ctx, audit); err != nil {
			return audit, fmt.Errorf("persisting audit for %s: %w", audit.Name, err)
		}
	}
	return audit, nil
}
