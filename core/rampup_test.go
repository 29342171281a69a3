package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/schema"
)

func TestRampUpTimeEvaluator(t *testing.T) {
	tests := []struct {
		name string
		hub  *fakeHub
		want float64
	}{
		{
			name: "no readme floors at 0.1",
			hub:  &fakeHub{readmeErr: errors.New("not found")},
			want: 0.1,
		},
		{
			name: "empty readme floors at 0.1",
			hub:  &fakeHub{readme: ""},
			want: 0.1,
		},
		{
			name: "bare readme only",
			hub:  &fakeHub{readme: "A model."},
			want: 0.25,
		},
		{
			name: "readme with instructions",
			hub: &fakeHub{readme: `# My Model

## Installation
pip install mymodel

## Training
Run the training loop on your data.

## Usage
import mymodel`},
			want: 1.0,
		},
		{
			name: "example files add a bonus",
			hub: &fakeHub{
				readme: "Quick overview.\n\n## Installation\npip install it",
				meta:   &schema.ModelInfo{Files: []schema.FileEntry{{Path: "examples/demo.ipynb"}}},
			},
			want: 0.6, // readme + install + bonus
		},
	}

	ev := &RampUpTimeEvaluator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			art := newTestContext(t, tt.hub, &fakeGit{}, schema.Triplet{Model: modelRef("org/model")})
			value, err := ev.Evaluate(context.Background(), art)
			require.NoError(t, err)
			assert.False(t, value.NotApplicable)
			assert.InDelta(t, tt.want, value.Score, 1e-9)
		})
	}
}
