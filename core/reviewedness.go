package core

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/modelgate/modelgate/schema"
)

// maxReviewedFileSize excludes oversized files from review coverage.
const maxReviewedFileSize = 10 << 20

// reviewMarkers detect commits that went through a reviewed pull request.
var reviewMarkers = []*regexp.Regexp{
	regexp.MustCompile(`#\d+`),
	regexp.MustCompile(`(?i)PR\s*#\d+`),
	regexp.MustCompile(`(?i)Merge pull request #\d+`),
	regexp.MustCompile(`\(#\d+\)`),
}

// ReviewednessEvaluator measures the fraction of code lines introduced
// through reviewed changes. Without a linked repository the metric is
// not applicable rather than zero.
type ReviewednessEvaluator struct{}

// Name implements the Evaluator interface.
func (e *ReviewednessEvaluator) Name() schema.MetricName { return schema.MetricReviewedness }

// Evaluate parses the clone's full commit history, classifies commits as
// reviewed via message heuristics, and divides reviewed added lines by
// total added lines over code files. Weight files and files above the
// size threshold are excluded.
func (e *ReviewednessEvaluator) Evaluate(ctx context.Context, art *ArtifactContext) (schema.MetricValue, error) {
	if _, ok := art.CodeRepo(ctx); !ok {
		return schema.NA(), nil
	}
	history, err := art.History(ctx)
	if err != nil {
		// The precondition (an inspectable repository) is absent.
		return schema.NA(), nil
	}

	reviewed, total := CountReviewedLines(history)
	if total == 0 {
		return schema.Value(0.0), nil
	}
	return schema.Value(float64(reviewed) / float64(total)), nil
}

// CountReviewedLines tallies reviewed vs total added lines over the
// repository's code files.
func CountReviewedLines(history *schema.RepoHistory) (reviewed, total int) {
	for _, commit := range history.Commits {
		isReviewed := reviewedCommit(commit.Subject)
		for _, delta := range commit.Files {
			if delta.Binary || !countableCodeFile(history.Dir, delta.Path) {
				continue
			}
			total += delta.Added
			if isReviewed {
				reviewed += delta.Added
			}
		}
	}
	return reviewed, total
}

// reviewedCommit applies the message heuristics: explicit PR reference
// markers or merge-commit phrasing.
func reviewedCommit(subject string) bool {
	for _, pat := range reviewMarkers {
		if pat.MatchString(subject) {
			return true
		}
	}
	return strings.HasPrefix(strings.ToLower(subject), "merge")
}

// countableCodeFile applies the code-extension filter plus the on-disk
// size threshold when the file still exists in the working tree.
func countableCodeFile(repoDir, path string) bool {
	if !schema.IsCodeFile(path) {
		return false
	}
	if repoDir != "" {
		if info, err := os.Stat(filepath.Join(repoDir, path)); err == nil && info.Size() > maxReviewedFileSize {
			return false
		}
	}
	return true
}
