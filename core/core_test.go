package core

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/schema"
)

// fakeHub is a scripted MetadataClient for evaluator and context tests.
type fakeHub struct {
	meta       *schema.ModelInfo
	metaErr    error
	metaDelay  time.Duration
	readme     string
	readmeErr  error
	dataset    *schema.DatasetInfo
	datasetErr error
	dsReadme   string

	metaCalls   atomic.Int32
	readmeCalls atomic.Int32
}

func (f *fakeHub) ModelInfo(ctx context.Context, _ schema.ArtifactRef) (*schema.ModelInfo, error) {
	f.metaCalls.Add(1)
	if f.metaDelay > 0 {
		select {
		case <-time.After(f.metaDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.meta, f.metaErr
}

func (f *fakeHub) DatasetInfo(_ context.Context, _ schema.ArtifactRef) (*schema.DatasetInfo, error) {
	return f.dataset, f.datasetErr
}

func (f *fakeHub) Readme(_ context.Context, ref schema.ArtifactRef) (string, error) {
	if ref.Kind == schema.DatasetKind {
		return f.dsReadme, nil
	}
	f.readmeCalls.Add(1)
	return f.readme, f.readmeErr
}

// fakeGit serves a canned history without touching the network.
type fakeGit struct {
	cloneErr error
	commits  []schema.Commit
	logErr   error

	cloneCalls atomic.Int32
}

func (f *fakeGit) CloneShallow(_ context.Context, _, _ string, _ int) error {
	f.cloneCalls.Add(1)
	return f.cloneErr
}

func (f *fakeGit) Log(_ context.Context, _ string) ([]schema.Commit, error) {
	return f.commits, f.logErr
}

func modelRef(name string) schema.ArtifactRef {
	return schema.ArtifactRef{
		URL:      "https://huggingface.co/" + name,
		Kind:     schema.ModelKind,
		Name:     name,
		Platform: schema.HubPlatform,
	}
}

func datasetRef(name string) schema.ArtifactRef {
	return schema.ArtifactRef{
		URL:      "https://huggingface.co/datasets/" + name,
		Kind:     schema.DatasetKind,
		Name:     name,
		Platform: schema.HubPlatform,
	}
}

func codeRef(owner, repo string) schema.ArtifactRef {
	return schema.ArtifactRef{
		URL:      fmt.Sprintf("https://github.com/%s/%s", owner, repo),
		Kind:     schema.CodeKind,
		Name:     owner + "/" + repo,
		Platform: schema.GitHubPlatform,
		Owner:    owner,
		Repo:     repo,
	}
}

// newTestContext builds an artifact context over scripted collaborators.
func newTestContext(t *testing.T, hub MetadataClient, git *fakeGit, triplet schema.Triplet) *ArtifactContext {
	t.Helper()
	art, err := BuildContext(triplet, hub, git)
	require.NoError(t, err)
	t.Cleanup(func() { art.Close() })
	return art
}
