package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/schema"
)

func TestParseArtifactURL(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantKind     schema.ArtifactKind
		wantPlatform string
		wantName     string
		wantOwner    string
		wantRepo     string
	}{
		{
			name:         "hub model",
			url:          "https://huggingface.co/google/gemma-2b",
			wantKind:     schema.ModelKind,
			wantPlatform: schema.HubPlatform,
			wantName:     "gemma-2b",
			wantOwner:    "google",
			wantRepo:     "gemma-2b",
		},
		{
			name:         "single segment model id",
			url:          "https://huggingface.co/gpt2",
			wantKind:     schema.ModelKind,
			wantPlatform: schema.HubPlatform,
			wantName:     "gpt2",
			wantRepo:     "gpt2",
		},
		{
			name:         "hub dataset",
			url:          "https://huggingface.co/datasets/allenai/c4",
			wantKind:     schema.DatasetKind,
			wantPlatform: schema.HubPlatform,
			wantName:     "allenai/c4",
			wantOwner:    "allenai",
			wantRepo:     "c4",
		},
		{
			name:         "single segment dataset id",
			url:          "https://huggingface.co/datasets/squad",
			wantKind:     schema.DatasetKind,
			wantPlatform: schema.HubPlatform,
			wantName:     "squad",
			wantRepo:     "squad",
		},
		{
			name:         "github code",
			url:          "https://github.com/google/gemma.git",
			wantKind:     schema.CodeKind,
			wantPlatform: schema.GitHubPlatform,
			wantName:     "google/gemma",
			wantOwner:    "google",
			wantRepo:     "gemma",
		},
		{
			name:         "unknown platform treated as dataset",
			url:          "https://example.com/data/imagenet",
			wantKind:     schema.DatasetKind,
			wantPlatform: schema.UnknownPlatform,
			wantName:     "imagenet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseArtifactURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, ref.Kind)
			assert.Equal(t, tt.wantPlatform, ref.Platform)
			assert.Equal(t, tt.wantName, ref.Name)
			assert.Equal(t, tt.wantOwner, ref.Owner)
			assert.Equal(t, tt.wantRepo, ref.Repo)
		})
	}
}

func TestParseArtifactURLInvalid(t *testing.T) {
	_, err := ParseArtifactURL("https://github.com/onlyowner")
	assert.Error(t, err)

	_, err = ParseArtifactURL("https://huggingface.co/")
	assert.Error(t, err)
}

func TestBuildTriplets(t *testing.T) {
	t.Run("resources precede their model", func(t *testing.T) {
		triplets, err := BuildTriplets([]string{
			"https://github.com/google/gemma",
			"https://huggingface.co/datasets/google/gemma-pretrain",
			"https://huggingface.co/google/gemma-2b",
		})
		require.NoError(t, err)
		require.Len(t, triplets, 1)
		assert.Equal(t, "gemma-2b", triplets[0].Model.Name)
		require.Len(t, triplets[0].Datasets, 1)
		require.Len(t, triplets[0].Code, 1)
		assert.Equal(t, "google/gemma", triplets[0].Code[0].Name)
	})

	t.Run("model without resources", func(t *testing.T) {
		triplets, err := BuildTriplets([]string{"https://huggingface.co/gpt2"})
		require.NoError(t, err)
		require.Len(t, triplets, 1)
		assert.Empty(t, triplets[0].Datasets)
		assert.Empty(t, triplets[0].Code)
	})

	t.Run("pending resources apply to several models", func(t *testing.T) {
		triplets, err := BuildTriplets([]string{
			"https://huggingface.co/datasets/squad",
			"https://huggingface.co/org/squad-reader-small",
			"https://huggingface.co/org/squad-reader-large",
		})
		require.NoError(t, err)
		require.Len(t, triplets, 2)
		require.Len(t, triplets[0].Datasets, 1)
		require.Len(t, triplets[1].Datasets, 1)
	})

	t.Run("unrelated resources fall back to most recent", func(t *testing.T) {
		triplets, err := BuildTriplets([]string{
			"https://huggingface.co/datasets/allenai/c4",
			"https://huggingface.co/mistralai/mistral-small",
		})
		require.NoError(t, err)
		require.Len(t, triplets, 1)
		// No token or owner match, so the latest dataset attaches anyway.
		require.Len(t, triplets[0].Datasets, 1)
		assert.Equal(t, "allenai/c4", triplets[0].Datasets[0].Name)
	})

	t.Run("blank entries skipped", func(t *testing.T) {
		triplets, err := BuildTriplets([]string{"", "  ", "https://huggingface.co/gpt2"})
		require.NoError(t, err)
		assert.Len(t, triplets, 1)
	})

	t.Run("parse error propagates", func(t *testing.T) {
		_, err := BuildTriplets([]string{"https://github.com/broken"})
		assert.Error(t, err)
	})
}
