package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/schema"
)

func TestIngestTriplet(t *testing.T) {
	tests := []struct {
		name         string
		urls         []string
		wantModel    string
		wantDatasets []string
		wantCode     []string
	}{
		{
			name:      "model on its own",
			urls:      []string{"https://huggingface.co/google/gemma-2b"},
			wantModel: "gemma-2b",
		},
		{
			name: "dataset and code after the model",
			urls: []string{
				"https://huggingface.co/google/gemma-2b",
				"https://huggingface.co/datasets/c4",
				"https://github.com/google/gemma",
			},
			wantModel:    "gemma-2b",
			wantDatasets: []string{"c4"},
			wantCode:     []string{"google/gemma"},
		},
		{
			name: "resources before the model",
			urls: []string{
				"https://huggingface.co/datasets/c4",
				"https://github.com/google/gemma",
				"https://huggingface.co/google/gemma-2b",
			},
			wantModel:    "gemma-2b",
			wantDatasets: []string{"c4"},
			wantCode:     []string{"google/gemma"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triplet, err := ingestTriplet(tt.urls)
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, triplet.Model.Name)
			assert.Equal(t, schema.ModelKind, triplet.Model.Kind)

			var datasets, code []string
			for _, ds := range triplet.Datasets {
				datasets = append(datasets, ds.Name)
			}
			for _, c := range triplet.Code {
				code = append(code, c.Name)
			}
			assert.Equal(t, tt.wantDatasets, datasets)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestIngestTripletRejections(t *testing.T) {
	_, err := ingestTriplet([]string{"https://huggingface.co/datasets/c4"})
	assert.ErrorContains(t, err, "requires a model")

	_, err = ingestTriplet([]string{
		"https://huggingface.co/google/gemma-2b",
		"https://huggingface.co/openai/whisper",
	})
	assert.ErrorContains(t, err, "exactly one model")

	_, err = ingestTriplet([]string{"://not-a-url"})
	assert.Error(t, err)
}
