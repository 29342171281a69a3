package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/schema"
)

func TestSizeScoreEvaluator(t *testing.T) {
	ev := &SizeScoreEvaluator{}

	t.Run("not applicable without metadata", func(t *testing.T) {
		hub := &fakeHub{metaErr: errors.New("hub down")}
		art := newTestContext(t, hub, &fakeGit{}, schema.Triplet{Model: modelRef("org/model")})

		value, err := ev.Evaluate(context.Background(), art)
		require.NoError(t, err)
		assert.True(t, value.NotApplicable)
	})

	t.Run("tiny model fits every tier", func(t *testing.T) {
		hub := &fakeHub{meta: &schema.ModelInfo{
			Files: []schema.FileEntry{{Path: "model.safetensors", Size: 100 << 20}},
		}}
		art := newTestContext(t, hub, &fakeGit{}, schema.Triplet{Model: modelRef("org/model")})

		value, err := ev.Evaluate(context.Background(), art)
		require.NoError(t, err)
		assert.True(t, value.Composite)
		require.NotNil(t, value.Breakdown)
		assert.InDelta(t, 1.0, value.Breakdown.RaspberryPi, 1e-9)
		assert.InDelta(t, 1.0, value.Breakdown.AWSServer, 1e-9)
		assert.InDelta(t, 1.0, value.Score, 1e-9)
	})

	t.Run("large model excluded from small tiers", func(t *testing.T) {
		// 8 GiB of weights: too big for a Pi, marginal for a Jetson,
		// comfortable on desktop and server tiers.
		hub := &fakeHub{meta: &schema.ModelInfo{
			Files: []schema.FileEntry{{Path: "model.bin", Size: 8 * gigabyte}},
		}}
		art := newTestContext(t, hub, &fakeGit{}, schema.Triplet{Model: modelRef("org/model")})

		value, err := ev.Evaluate(context.Background(), art)
		require.NoError(t, err)
		require.NotNil(t, value.Breakdown)
		assert.Zero(t, value.Breakdown.RaspberryPi)
		assert.Zero(t, value.Breakdown.JetsonNano)
		assert.InDelta(t, 1.0, value.Breakdown.DesktopPC, 1e-9)
		assert.InDelta(t, 1.0, value.Breakdown.AWSServer, 1e-9)
	})

	t.Run("linear falloff between half and double capacity", func(t *testing.T) {
		// Exactly the Pi's 1 GiB capacity lands mid-falloff.
		score := tierScore(raspberryPiCapacity, raspberryPiCapacity)
		assert.InDelta(t, 2.0/3.0, score, 1e-9)
	})

	t.Run("non-weight files ignored", func(t *testing.T) {
		hub := &fakeHub{meta: &schema.ModelInfo{
			Files: []schema.FileEntry{
				{Path: "README.md", Size: 100 * gigabyte},
				{Path: "data.csv", Size: 100 * gigabyte},
			},
		}}
		art := newTestContext(t, hub, &fakeGit{}, schema.Triplet{Model: modelRef("org/model")})

		value, err := ev.Evaluate(context.Background(), art)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, value.Score, 1e-9)
	})
}
