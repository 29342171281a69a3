package registry

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/core"
	"github.com/modelgate/modelgate/schema"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.db")
	require.NoError(t, Migrate(path, -1))

	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleAudit(name string, passed bool, at time.Time) *core.Audit {
	audit := &core.Audit{
		Name: name,
		Record: schema.FlatRecord{
			Name:     name,
			Category: "MODEL",
			NetScore: 0.75,
			License:  1.0,
		},
		Verdict:   schema.GateVerdict{Passed: passed, Failing: []schema.FailedMetric{}},
		CreatedAt: at,
	}
	if passed {
		audit.ArtifactID = "id-" + name
	} else {
		audit.Verdict.Failing = append(audit.Verdict.Failing, schema.FailedMetric{
			Metric: schema.MetricLicense, Score: 0.3, Threshold: 0.5, Gap: -0.2,
		})
	}
	return audit
}

func TestSaveAndLoadAudit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	saved := sampleAudit("org/model", true, at)
	require.NoError(t, store.SaveAudit(ctx, saved))

	loaded, err := store.LatestAudit(ctx, "org/model")
	require.NoError(t, err)
	assert.Equal(t, "id-org/model", loaded.ArtifactID)
	assert.Equal(t, "org/model", loaded.Name)
	assert.True(t, loaded.Verdict.Passed)
	assert.InDelta(t, 0.75, loaded.Record.NetScore, 1e-9)
	assert.Equal(t, at, loaded.CreatedAt)
}

func TestLatestAuditNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.LatestAudit(context.Background(), "org/unknown")
	assert.ErrorIs(t, err, ErrAuditNotFound)
}

func TestRejectionRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rejected := sampleAudit("org/weak", false, time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.SaveAudit(ctx, rejected))

	loaded, err := store.LatestAudit(ctx, "org/weak")
	require.NoError(t, err)
	assert.False(t, loaded.Verdict.Passed)
	assert.Empty(t, loaded.ArtifactID)
	require.Len(t, loaded.Verdict.Failing, 1)
	assert.Equal(t, schema.MetricLicense, loaded.Verdict.Failing[0].Metric)
}

func TestReingestKeepsHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveAudit(ctx, sampleAudit("org/model", false, base)))
	require.NoError(t, store.SaveAudit(ctx, sampleAudit("org/model", true, base.Add(time.Hour))))

	latest, err := store.LatestAudit(ctx, "org/model")
	require.NoError(t, err)
	assert.True(t, latest.Verdict.Passed)

	audits, err := store.ListAudits(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, audits, 2)
}

func TestListAuditsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"org/a", "org/b", "org/c"} {
		require.NoError(t, store.SaveAudit(ctx, sampleAudit(name, true, base.Add(time.Duration(i)*time.Minute))))
	}

	audits, err := store.ListAudits(ctx, 2)
	require.NoError(t, err)
	require.Len(t, audits, 2)
	assert.Equal(t, "org/c", audits[0].Name)
	assert.Equal(t, "org/b", audits[1].Name)
}

func TestMigrateRollback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.db")
	require.NoError(t, Migrate(path, -1))

	// Migrating again is a no-op.
	require.NoError(t, Migrate(path, -1))

	// Rolling back drops the table; opening still works but saves fail.
	require.NoError(t, Migrate(path, 0))
	store, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	err = store.SaveAudit(context.Background(), sampleAudit("org/model", true, time.Now()))
	assert.Error(t, err)
}
