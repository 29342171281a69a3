package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/modelgate/modelgate/internal/logging"
	"github.com/modelgate/modelgate/schema"
)

// DefaultBudget is the per-evaluator time budget.
const DefaultBudget = 60 * time.Second

// Scorer fans the evaluator set out concurrently against one context and
// reduces the settled results into a weighted score report.
type Scorer struct {
	evaluators []Evaluator
	weights    schema.WeightTable
	budget     time.Duration
	logger     *slog.Logger
}

// ScorerOption adjusts scorer construction.
type ScorerOption func(*Scorer)

// WithBudget overrides the per-evaluator time budget.
func WithBudget(budget time.Duration) ScorerOption {
	return func(s *Scorer) {
		if budget > 0 {
			s.budget = budget
		}
	}
}

// NewScorer builds a scorer over the fixed evaluator set. It fails when
// the weight table names a metric without a registered evaluator.
func NewScorer(weights schema.WeightTable, opts ...ScorerOption) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	evaluators := Evaluators()
	if err := ValidateTables(evaluators, weights, nil); err != nil {
		return nil, err
	}
	s := &Scorer{
		evaluators: evaluators,
		weights:    weights,
		budget:     DefaultBudget,
		logger:     logging.New("scorer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Score runs every evaluator concurrently against the context and joins
// on all of them before reducing. One evaluator's fault or timeout never
// aborts or delays its siblings.
func (s *Scorer) Score(ctx context.Context, art *ArtifactContext) *schema.ScoreReport {
	start := time.Now()
	results := make([]schema.MetricResult, len(s.evaluators))

	// Shared fetches outlive any single task's budget, so they run under
	// the pass context rather than the first requester's.
	art.bindPass(ctx)

	// True fan-out: every task is launched before any is awaited, since
	// wall time is dominated by external I/O rather than computation.
	var wg sync.WaitGroup
	for i, ev := range s.evaluators {
		wg.Go(func() {
			results[i] = s.runOne(ctx, ev, art)
		})
	}
	wg.Wait()

	report := &schema.ScoreReport{
		Name:     art.Model().Name,
		Results:  make(map[schema.MetricName]schema.MetricResult, len(results)),
		ScoredAt: start,
	}
	for _, res := range results {
		report.Results[res.Name] = res
	}
	report.NetScore = netScore(report.Results, s.weights)
	report.NetLatency = time.Since(start).Milliseconds()
	return report
}

// runOne executes a single evaluator under its time budget, converting
// errors, panics and overruns into faulted results.
func (s *Scorer) runOne(ctx context.Context, ev Evaluator, art *ArtifactContext) schema.MetricResult {
	start := time.Now()
	result := schema.MetricResult{Name: ev.Name()}

	taskCtx, cancel := context.WithTimeout(ctx, s.budget)
	defer cancel()

	type settled struct {
		value schema.MetricValue
		err   error
	}
	done := make(chan settled, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- settled{err: fmt.Errorf("evaluator panicked: %v", r)}
			}
		}()
		value, err := ev.Evaluate(taskCtx, art)
		done <- settled{value: value, err: err}
	}()

	select {
	case out := <-done:
		switch {
		case out.err != nil:
			result.Outcome = schema.Faulted
			result.Fault = out.err.Error()
			s.logger.Warn("evaluator faulted", "metric", ev.Name(), "error", out.err)
		case out.value.NotApplicable:
			result.Outcome = schema.NotApplicable
		default:
			result.Outcome = schema.Applicable
			result.Score = clamp01(out.value.Score)
			result.Composite = out.value.Composite
			result.Breakdown = out.value.Breakdown
		}
	case <-taskCtx.Done():
		// Budget exceeded or caller gone; the metric settles as a fault
		// and the stray goroutine drains into the buffered channel.
		result.Outcome = schema.Faulted
		result.Fault = fmt.Sprintf("budget exceeded after %s", s.budget)
		s.logger.Warn("evaluator timed out", "metric", ev.Name(), "budget", s.budget)
	}

	result.Latency = time.Since(start).Milliseconds()
	return result
}

// netScore computes the weighted aggregate over applicable, non-composite
// metrics. Not-applicable metrics leave both numerator and denominator,
// which renormalizes the remaining weights implicitly; faulted metrics
// stay in at score zero so failures count against the aggregate. With no
// applicable weight at all the net score is defined as zero.
func netScore(results map[schema.MetricName]schema.MetricResult, weights schema.WeightTable) float64 {
	var totalScore, totalWeight float64
	for name, res := range results {
		if res.Outcome == schema.NotApplicable || res.Composite {
			continue
		}
		weight := weights[name]
		totalScore += res.ReportedScore() * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}
	return clamp01(totalScore / totalWeight)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
