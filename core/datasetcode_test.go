package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/schema"
)

func TestDatasetAndCodeEvaluator(t *testing.T) {
	ev := &DatasetAndCodeEvaluator{}

	tests := []struct {
		name    string
		triplet schema.Triplet
		hub     *fakeHub
		want    float64
	}{
		{
			name: "both linked via locators",
			triplet: schema.Triplet{
				Model:    modelRef("org/model"),
				Datasets: []schema.ArtifactRef{datasetRef("org/corpus")},
				Code:     []schema.ArtifactRef{codeRef("org", "trainer")},
			},
			hub:  &fakeHub{},
			want: 1.0,
		},
		{
			name:    "dataset evidence from readme only",
			triplet: schema.Triplet{Model: modelRef("org/model")},
			hub:     &fakeHub{readme: "Trained on the C4 corpus, see huggingface.co/datasets/c4."},
			want:    0.5,
		},
		{
			name:    "code evidence from readme only",
			triplet: schema.Triplet{Model: modelRef("org/model")},
			hub:     &fakeHub{readme: "See the official weights."},
			want:    0.1,
		},
		{
			name:    "script files count as code evidence",
			triplet: schema.Triplet{Model: modelRef("org/model")},
			hub: &fakeHub{
				readme: "Weights only.",
				meta:   &schema.ModelInfo{Files: []schema.FileEntry{{Path: "run_inference.py"}}},
			},
			want: 0.5,
		},
		{
			name:    "neither linked nor documented",
			triplet: schema.Triplet{Model: modelRef("org/model")},
			hub:     &fakeHub{readme: "Weights."},
			want:    0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			art := newTestContext(t, tt.hub, &fakeGit{}, tt.triplet)
			value, err := ev.Evaluate(context.Background(), art)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, value.Score, 1e-9)
		})
	}
}
