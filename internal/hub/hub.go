// Package hub is a thin client for model-hub metadata APIs.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/modelgate/modelgate/internal/logging"
	"github.com/modelgate/modelgate/schema"
)

// ErrNotFound indicates the artifact does not exist on the hub.
var ErrNotFound = errors.New("hub resource not found")

const (
	defaultTimeout = 30 * time.Second
	cacheTTL       = 5 * time.Minute
	cacheSweep     = 10 * time.Minute
	maxReadmeBytes = 4 << 20
)

// readmeCandidates are tried in order when fetching documentation.
var readmeCandidates = []string{"README.md", "readme.md", "README.txt", "readme.txt"}

// Client fetches model and dataset metadata from a Hugging Face style hub.
// Responses are cached with a TTL and concurrent identical requests are
// collapsed through a singleflight group, so a burst of evaluators asking
// for the same resource costs one upstream call.
type Client struct {
	base   string
	token  string
	http   *http.Client
	cache  *gocache.Cache
	group  singleflight.Group
	logger *slog.Logger
}

// NewClient builds a hub client for the given base URL. The bearer token
// is read from the HF_TOKEN environment variable when present.
func NewClient(base string) *Client {
	return &Client{
		base:   base,
		token:  os.Getenv("HF_TOKEN"),
		http:   &http.Client{Timeout: defaultTimeout},
		cache:  gocache.New(cacheTTL, cacheSweep),
		logger: logging.New("hub"),
	}
}

// modelResponse mirrors the subset of the hub model API we consume.
type modelResponse struct {
	ID           string    `json:"id"`
	Author       string    `json:"author"`
	Downloads    int64     `json:"downloads"`
	Likes        int64     `json:"likes"`
	LastModified time.Time `json:"lastModified"`
	Tags         []string  `json:"tags"`
	PipelineTag  string    `json:"pipeline_tag"`
	LibraryName  string    `json:"library_name"`
	ModelIndex   []any     `json:"model-index"`
	Siblings     []struct {
		Filename string `json:"rfilename"`
		Size     int64  `json:"size"`
	} `json:"siblings"`
}

// datasetResponse mirrors the subset of the hub dataset API we consume.
type datasetResponse struct {
	ID           string    `json:"id"`
	Author       string    `json:"author"`
	Downloads    int64     `json:"downloads"`
	Likes        int64     `json:"likes"`
	LastModified time.Time `json:"lastModified"`
	Tags         []string  `json:"tags"`
}

// ModelInfo returns metadata for a hub-hosted model.
func (c *Client) ModelInfo(ctx context.Context, ref schema.ArtifactRef) (*schema.ModelInfo, error) {
	if ref.Platform != schema.HubPlatform || ref.RepoID() == "" {
		return nil, fmt.Errorf("%w: %s is not a hub model", ErrNotFound, ref.URL)
	}

	key := "model:" + ref.RepoID()
	value, err := c.fetchOnce(ctx, key, func(ctx context.Context) (any, error) {
		url := fmt.Sprintf("%s/api/models/%s?blobs=true", c.base, ref.RepoID())
		var resp modelResponse
		if err := c.getJSON(ctx, url, &resp); err != nil {
			return nil, err
		}
		info := &schema.ModelInfo{
			ID:            resp.ID,
			Author:        resp.Author,
			Downloads:     resp.Downloads,
			Likes:         resp.Likes,
			LastModified:  resp.LastModified,
			Tags:          resp.Tags,
			PipelineTag:   resp.PipelineTag,
			LibraryName:   resp.LibraryName,
			HasModelIndex: len(resp.ModelIndex) > 0,
		}
		for _, s := range resp.Siblings {
			info.Files = append(info.Files, schema.FileEntry{Path: s.Filename, Size: s.Size})
		}
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*schema.ModelInfo), nil
}

// DatasetInfo returns metadata for a hub-hosted dataset.
func (c *Client) DatasetInfo(ctx context.Context, ref schema.ArtifactRef) (*schema.DatasetInfo, error) {
	if ref.Platform != schema.HubPlatform || ref.RepoID() == "" {
		return nil, fmt.Errorf("%w: %s is not a hub dataset", ErrNotFound, ref.URL)
	}

	key := "dataset:" + ref.RepoID()
	value, err := c.fetchOnce(ctx, key, func(ctx context.Context) (any, error) {
		url := fmt.Sprintf("%s/api/datasets/%s", c.base, ref.RepoID())
		var resp datasetResponse
		if err := c.getJSON(ctx, url, &resp); err != nil {
			return nil, err
		}
		return &schema.DatasetInfo{
			ID:           resp.ID,
			Author:       resp.Author,
			Downloads:    resp.Downloads,
			Likes:        resp.Likes,
			LastModified: resp.LastModified,
			Tags:         resp.Tags,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*schema.DatasetInfo), nil
}

// Readme returns the long-form documentation for a model or dataset,
// trying the usual filenames in order. Returns ErrNotFound when no
// candidate exists.
func (c *Client) Readme(ctx context.Context, ref schema.ArtifactRef) (string, error) {
	if ref.Platform != schema.HubPlatform || ref.RepoID() == "" {
		return "", fmt.Errorf("%w: %s is not hub-hosted", ErrNotFound, ref.URL)
	}

	prefix := ""
	if ref.Kind == schema.DatasetKind {
		prefix = "datasets/"
	}

	key := "readme:" + prefix + ref.RepoID()
	value, err := c.fetchOnce(ctx, key, func(ctx context.Context) (any, error) {
		for _, name := range readmeCandidates {
			url := fmt.Sprintf("%s/%s%s/raw/main/%s", c.base, prefix, ref.RepoID(), name)
			body, err := c.getRaw(ctx, url)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			return body, nil
		}
		return nil, fmt.Errorf("%w: no readme in %s", ErrNotFound, ref.RepoID())
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// fetchOnce serves from the TTL cache, collapsing concurrent misses for
// the same key into a single upstream fetch.
func (c *Client) fetchOnce(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}
	value, err, _ := c.group.Do(key, func() (any, error) {
		if cached, ok := c.cache.Get(key); ok {
			return cached, nil
		}
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.cache.SetDefault(key, value)
		return value, nil
	})
	return value, err
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	body, err := c.getRaw(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("hub request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode >= 400:
		c.logger.Warn("hub request rejected", "url", url, "status", resp.StatusCode)
		return "", fmt.Errorf("hub returned %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReadmeBytes))
	if err != nil {
		return "", fmt.Errorf("reading hub response: %w", err)
	}
	return string(body), nil
}
