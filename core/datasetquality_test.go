package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/schema"
)

func tripletWithDataset() schema.Triplet {
	return schema.Triplet{
		Model:    modelRef("org/model"),
		Datasets: []schema.ArtifactRef{datasetRef("org/corpus")},
	}
}

func TestDatasetQualityEvaluator(t *testing.T) {
	ev := &DatasetQualityEvaluator{}

	t.Run("fully documented dataset card", func(t *testing.T) {
		hub := &fakeHub{
			dataset: &schema.DatasetInfo{ID: "org/corpus"},
			dsReadme: `# Dataset description

Contains 2 million samples of curated text.

## License
Apache-2.0

## Benchmark results
Baseline accuracy reported below.`,
		}
		art := newTestContext(t, hub, &fakeGit{}, tripletWithDataset())
		value, err := ev.Evaluate(context.Background(), art)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, value.Score, 1e-9)
	})

	t.Run("linked but unreachable card scores zero", func(t *testing.T) {
		hub := &fakeHub{dsReadme: ""}
		art := newTestContext(t, hub, &fakeGit{}, tripletWithDataset())
		value, err := ev.Evaluate(context.Background(), art)
		require.NoError(t, err)
		assert.Zero(t, value.Score)
	})

	t.Run("license satisfied by dataset tag", func(t *testing.T) {
		hub := &fakeHub{
			dataset:  &schema.DatasetInfo{Tags: []string{"license:mit"}},
			dsReadme: "Overview of the corpus.",
		}
		art := newTestContext(t, hub, &fakeGit{}, tripletWithDataset())
		value, err := ev.Evaluate(context.Background(), art)
		require.NoError(t, err)
		// Description criterion plus the tag-derived license.
		assert.InDelta(t, 0.5, value.Score, 1e-9)
	})

	t.Run("model readme stands in without a linked dataset", func(t *testing.T) {
		hub := &fakeHub{readme: "Dataset overview: 10 thousand samples, MIT license, GLUE benchmark."}
		art := newTestContext(t, hub, &fakeGit{}, schema.Triplet{Model: modelRef("org/model")})
		value, err := ev.Evaluate(context.Background(), art)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, value.Score, 1e-9)
	})

	t.Run("no evidence at all", func(t *testing.T) {
		art := newTestContext(t, &fakeHub{}, &fakeGit{}, schema.Triplet{Model: modelRef("org/model")})
		value, err := ev.Evaluate(context.Background(), art)
		require.NoError(t, err)
		assert.InDelta(t, 0.3, value.Score, 1e-9)
	})
}
