package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/schema"
)

func TestBusFactorEvaluator(t *testing.T) {
	ev := &BusFactorEvaluator{}

	t.Run("popular model with diverse contributors", func(t *testing.T) {
		hub := &fakeHub{meta: &schema.ModelInfo{
			Downloads:    50000,
			Likes:        200,
			LastModified: time.Now(),
		}}
		git := &fakeGit{commits: []schema.Commit{
			{Hash: "a", Author: "alice"},
			{Hash: "b", Author: "bob"},
			{Hash: "c", Author: "carol"},
		}}
		art := newTestContext(t, hub, git, tripletWithCode())

		value, err := ev.Evaluate(context.Background(), art)
		require.NoError(t, err)
		// Engagement caps at 0.8: 0.8*0.6 + 0.8*0.4.
		assert.InDelta(t, 0.8, value.Score, 1e-9)
	})

	t.Run("no metadata shifts weight to history", func(t *testing.T) {
		hub := &fakeHub{metaErr: errors.New("hub down"), readme: "No links."}
		git := &fakeGit{commits: []schema.Commit{
			{Hash: "a", Author: "alice"},
			{Hash: "b", Author: "bob"},
		}}
		triplet := tripletWithCode()
		art := newTestContext(t, hub, git, triplet)

		value, err := ev.Evaluate(context.Background(), art)
		require.NoError(t, err)
		// Two authors, full git weight.
		assert.InDelta(t, 0.6, value.Score, 1e-9)
	})

	t.Run("obscure model without history", func(t *testing.T) {
		hub := &fakeHub{meta: &schema.ModelInfo{Downloads: 5}, readme: "No links."}
		art := newTestContext(t, hub, &fakeGit{}, schema.Triplet{Model: modelRef("org/model")})

		value, err := ev.Evaluate(context.Background(), art)
		require.NoError(t, err)
		assert.Zero(t, value.Score)
	})
}

func TestContributorLadder(t *testing.T) {
	assert.InDelta(t, 0.8, contributorLadder(5), 1e-9)
	assert.InDelta(t, 0.8, contributorLadder(3), 1e-9)
	assert.InDelta(t, 0.6, contributorLadder(2), 1e-9)
	assert.InDelta(t, 0.5, contributorLadder(1), 1e-9)
	assert.InDelta(t, 0.1, contributorLadder(0), 1e-9)
}

func TestEngagementScoreCapped(t *testing.T) {
	info := &schema.ModelInfo{Downloads: 1 << 30, Likes: 1 << 20, LastModified: time.Now()}
	assert.InDelta(t, 0.8, engagementScore(info), 1e-9)
}
