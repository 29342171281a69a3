// Package core has the context builder, evaluators, orchestrator and gate.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/modelgate/modelgate/internal/gitscan"
	"github.com/modelgate/modelgate/internal/logging"
	"github.com/modelgate/modelgate/schema"
)

// ErrMissingModel aborts a scoring pass before any evaluator runs.
// It is the only input error the builder produces.
var ErrMissingModel = errors.New("model locator is required")

// MetadataClient is what the context needs from the hub collaborator.
type MetadataClient interface {
	ModelInfo(ctx context.Context, ref schema.ArtifactRef) (*schema.ModelInfo, error)
	DatasetInfo(ctx context.Context, ref schema.ArtifactRef) (*schema.DatasetInfo, error)
	Readme(ctx context.Context, ref schema.ArtifactRef) (string, error)
}

// fetchCell memoizes one expensive fetch. The first caller performs the
// fetch; concurrent callers block on the same Do and share the result.
// Both value and error are cached, so a failed resource stays degraded
// for the rest of the pass instead of being retried by every evaluator.
type fetchCell[T any] struct {
	once sync.Once
	val  T
	err  error
}

func (c *fetchCell[T]) get(fetch func() (T, error)) (T, error) {
	c.once.Do(func() {
		c.val, c.err = fetch()
	})
	return c.val, c.err
}

// ArtifactContext is the canonical, lazily populated view of one artifact
// triplet. It is owned by a single scoring pass: evaluators share it
// read-only and every lazy sub-resource is fetched at most once.
type ArtifactContext struct {
	triplet    schema.Triplet
	hub        MetadataClient
	git        gitscan.Client
	cloneDepth int
	logger     *slog.Logger
	passCtx    context.Context

	meta          fetchCell[*schema.ModelInfo]
	readme        fetchCell[string]
	dataset       fetchCell[*schema.DatasetInfo]
	datasetReadme fetchCell[string]
	codeRef       fetchCell[schema.ArtifactRef]
	history       fetchCell[*schema.RepoHistory]

	mu       sync.Mutex
	degraded map[string]error
	tmpDirs  []string
}

// ContextOption adjusts context construction.
type ContextOption func(*ArtifactContext)

// WithCloneDepth overrides the shallow clone depth for history fetches.
func WithCloneDepth(depth int) ContextOption {
	return func(a *ArtifactContext) {
		if depth > 0 {
			a.cloneDepth = depth
		}
	}
}

// BuildContext resolves a triplet into an artifact context. It fails only
// when the model locator is missing; unreachable sub-resources surface
// later as degraded state, not as build errors.
func BuildContext(triplet schema.Triplet, hub MetadataClient, git gitscan.Client, opts ...ContextOption) (*ArtifactContext, error) {
	if triplet.Model.IsZero() {
		return nil, ErrMissingModel
	}
	a := &ArtifactContext{
		triplet:    triplet,
		hub:        hub,
		git:        git,
		cloneDepth: 50,
		logger:     logging.New("context"),
		degraded:   make(map[string]error),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// bindPass pins the context shared fetches run under. Must be called
// before any evaluator touches the context.
func (a *ArtifactContext) bindPass(ctx context.Context) {
	if ctx != nil {
		a.passCtx = ctx
	}
}

// fetchCtx picks the context a shared fetch runs under. Inside a scoring
// pass that is the pass context rather than the requesting task's, so one
// task's cancellation cannot memoize a degraded result for siblings that
// still have budget left.
func (a *ArtifactContext) fetchCtx(caller context.Context) context.Context {
	if a.passCtx != nil {
		return a.passCtx
	}
	return caller
}

// Model returns the model locator.
func (a *ArtifactContext) Model() schema.ArtifactRef { return a.triplet.Model }

// Datasets returns the linked dataset locators.
func (a *ArtifactContext) Datasets() []schema.ArtifactRef { return a.triplet.Datasets }

// Metadata returns the hub metadata facet, fetching it on first access.
func (a *ArtifactContext) Metadata(ctx context.Context) (*schema.ModelInfo, error) {
	return fetchResource(a, "metadata", &a.meta, func() (*schema.ModelInfo, error) {
		return a.hub.ModelInfo(a.fetchCtx(ctx), a.triplet.Model)
	})
}

// Readme returns the model's long-form documentation.
func (a *ArtifactContext) Readme(ctx context.Context) (string, error) {
	return fetchResource(a, "readme", &a.readme, func() (string, error) {
		return a.hub.Readme(a.fetchCtx(ctx), a.triplet.Model)
	})
}

// DatasetInfo returns metadata for the first hub-hosted linked dataset.
func (a *ArtifactContext) DatasetInfo(ctx context.Context) (*schema.DatasetInfo, error) {
	return fetchResource(a, "dataset", &a.dataset, func() (*schema.DatasetInfo, error) {
		for _, ds := range a.triplet.Datasets {
			if ds.Platform == schema.HubPlatform {
				return a.hub.DatasetInfo(a.fetchCtx(ctx), ds)
			}
		}
		return nil, fmt.Errorf("no hub-hosted dataset linked")
	})
}

// DatasetReadme returns documentation for the first hub-hosted dataset.
func (a *ArtifactContext) DatasetReadme(ctx context.Context) (string, error) {
	return fetchResource(a, "dataset_readme", &a.datasetReadme, func() (string, error) {
		for _, ds := range a.triplet.Datasets {
			if ds.Platform == schema.HubPlatform {
				return a.hub.Readme(a.fetchCtx(ctx), ds)
			}
		}
		return "", fmt.Errorf("no hub-hosted dataset linked")
	})
}

var githubLinkPattern = regexp.MustCompile(`https?://github\.com/([^/\s]+)/([^/\s\)\]#"',]+)`)

// CodeRepo returns the linked code repository, discovering one from the
// model readme when the triplet carries none. The bool reports presence.
func (a *ArtifactContext) CodeRepo(ctx context.Context) (schema.ArtifactRef, bool) {
	ref, err := a.codeRef.get(func() (schema.ArtifactRef, error) {
		for _, code := range a.triplet.Code {
			if code.Platform == schema.GitHubPlatform {
				return code, nil
			}
		}
		readme, err := a.Readme(ctx)
		if err != nil {
			return schema.ArtifactRef{}, err
		}
		match := githubLinkPattern.FindStringSubmatch(readme)
		if match == nil {
			return schema.ArtifactRef{}, fmt.Errorf("no repository link in readme")
		}
		owner := match[1]
		repo := strings.TrimRight(match[2], ".,;:)")
		repo = strings.TrimSuffix(repo, ".git")
		a.logger.Debug("discovered repository in readme", "owner", owner, "repo", repo)
		return schema.ArtifactRef{
			URL:      fmt.Sprintf("https://github.com/%s/%s", owner, repo),
			Kind:     schema.CodeKind,
			Name:     owner + "/" + repo,
			Platform: schema.GitHubPlatform,
			Owner:    owner,
			Repo:     repo,
		}, nil
	})
	if err != nil {
		return schema.ArtifactRef{}, false
	}
	return ref, true
}

// History shallow-clones the linked repository and parses its log with
// per-commit line deltas. Concurrent first access performs one clone.
func (a *ArtifactContext) History(ctx context.Context) (*schema.RepoHistory, error) {
	return fetchResource(a, "history", &a.history, func() (*schema.RepoHistory, error) {
		fctx := a.fetchCtx(ctx)
		repo, ok := a.CodeRepo(fctx)
		if !ok {
			return nil, fmt.Errorf("no code repository linked")
		}

		dir, err := os.MkdirTemp("", "modelgate_clone_")
		if err != nil {
			return nil, fmt.Errorf("creating clone dir: %w", err)
		}
		a.mu.Lock()
		a.tmpDirs = append(a.tmpDirs, dir)
		a.mu.Unlock()

		if err := a.git.CloneShallow(fctx, repo.URL, dir, a.cloneDepth); err != nil {
			return nil, fmt.Errorf("cloning %s: %w", repo.URL, err)
		}
		commits, err := a.git.Log(fctx, dir)
		if err != nil {
			return nil, fmt.Errorf("reading log of %s: %w", repo.URL, err)
		}
		return &schema.RepoHistory{Dir: dir, Commits: commits}, nil
	})
}

// Degraded lists sub-resources whose fetch failed during this pass.
func (a *ArtifactContext) Degraded() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.degraded))
	for name := range a.degraded {
		names = append(names, name)
	}
	return names
}

// Close removes any working trees cloned during the pass.
func (a *ArtifactContext) Close() {
	a.mu.Lock()
	dirs := a.tmpDirs
	a.tmpDirs = nil
	a.mu.Unlock()
	for _, dir := range dirs {
		_ = os.RemoveAll(dir)
	}
}

// fetchResource runs a cell fetch and records degraded state on failure.
func fetchResource[T any](a *ArtifactContext, name string, cell *fetchCell[T], fetch func() (T, error)) (T, error) {
	val, err := cell.get(func() (T, error) {
		val, err := fetch()
		if err != nil {
			a.mu.Lock()
			a.degraded[name] = err
			a.mu.Unlock()
			a.logger.Warn("sub-resource unavailable", "resource", name, "model", a.triplet.Model.Name, "error", err)
		}
		return val, err
	})
	return val, err
}
