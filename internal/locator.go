// Package internal has configuration, locator parsing and output helpers.
package internal

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/modelgate/modelgate/schema"
)

// ParseArtifactURL resolves a raw URL into a categorized artifact ref.
// Hugging Face URLs become models (or datasets under /datasets/), GitHub
// URLs become code, and anything else is treated as a dataset locator.
func ParseArtifactURL(raw string) (schema.ArtifactRef, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil {
		return schema.ArtifactRef{}, fmt.Errorf("invalid artifact URL %q: %w", raw, err)
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case strings.Contains(host, "huggingface.co"):
		return parseHubURL(raw, parsed)
	case strings.Contains(host, "github.com"):
		return parseGitHubURL(raw, parsed)
	default:
		// Unknown platforms default to dataset; there is nothing to fetch
		// from them but the linkage evidence still counts.
		name := raw
		if i := strings.LastIndex(strings.TrimRight(raw, "/"), "/"); i >= 0 {
			name = strings.TrimRight(raw, "/")[i+1:]
		}
		return schema.ArtifactRef{
			URL:      raw,
			Kind:     schema.DatasetKind,
			Name:     name,
			Platform: schema.UnknownPlatform,
		}, nil
	}
}

func parseHubURL(raw string, parsed *url.URL) (schema.ArtifactRef, error) {
	parts := splitPath(parsed.Path)
	if len(parts) == 0 {
		return schema.ArtifactRef{}, fmt.Errorf("invalid Hugging Face URL: %s", raw)
	}

	// Dataset route is /datasets/<owner>/<repo>; anything else is a model.
	if parts[0] == "datasets" && len(parts) >= 2 {
		ref := schema.ArtifactRef{
			URL:      raw,
			Kind:     schema.DatasetKind,
			Platform: schema.HubPlatform,
			Owner:    parts[1],
		}
		if len(parts) > 2 {
			ref.Repo = parts[2]
			ref.Name = parts[1] + "/" + parts[2]
		} else {
			// Single-segment dataset id, e.g. /datasets/squad
			ref.Repo = parts[1]
			ref.Owner = ""
			ref.Name = parts[1]
		}
		return ref, nil
	}

	ref := schema.ArtifactRef{
		URL:      raw,
		Kind:     schema.ModelKind,
		Platform: schema.HubPlatform,
		Owner:    parts[0],
	}
	if len(parts) > 1 {
		ref.Repo = parts[1]
		ref.Name = parts[1]
	} else {
		// Single-segment model id, e.g. /gpt2
		ref.Repo = parts[0]
		ref.Owner = ""
		ref.Name = parts[0]
	}
	return ref, nil
}

func parseGitHubURL(raw string, parsed *url.URL) (schema.ArtifactRef, error) {
	parts := splitPath(parsed.Path)
	if len(parts) < 2 {
		return schema.ArtifactRef{}, fmt.Errorf("invalid GitHub URL: %s", raw)
	}
	repo := strings.TrimSuffix(parts[1], ".git")
	return schema.ArtifactRef{
		URL:      raw,
		Kind:     schema.CodeKind,
		Name:     parts[0] + "/" + repo,
		Platform: schema.GitHubPlatform,
		Owner:    parts[0],
		Repo:     repo,
	}, nil
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// BuildTriplets links datasets and code locators to the models that
// follow them in the input order. Resources are linked by name-token
// overlap or shared owner; when nothing matches, the most recent
// resources are attached as a fallback. Pending resources are not
// cleared between models since they may apply to several of them.
func BuildTriplets(urls []string) ([]schema.Triplet, error) {
	var triplets []schema.Triplet
	var pendingDatasets, pendingCode []schema.ArtifactRef

	for _, raw := range urls {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		ref, err := ParseArtifactURL(raw)
		if err != nil {
			return nil, err
		}
		switch ref.Kind {
		case schema.DatasetKind:
			pendingDatasets = append(pendingDatasets, ref)
		case schema.CodeKind:
			pendingCode = append(pendingCode, ref)
		case schema.ModelKind:
			triplets = append(triplets, schema.Triplet{
				Model:    ref,
				Datasets: relevantResources(ref, pendingDatasets),
				Code:     relevantResources(ref, pendingCode),
			})
		}
	}
	return triplets, nil
}

// relevantResources selects resources related to the model by name token
// overlap or shared owner, falling back to the most recent two.
func relevantResources(model schema.ArtifactRef, resources []schema.ArtifactRef) []schema.ArtifactRef {
	if len(resources) == 0 {
		return nil
	}

	modelTokens := nameTokens(model.Name)
	var relevant []schema.ArtifactRef
	for _, res := range resources {
		if overlaps(modelTokens, nameTokens(res.Name)) || (model.Owner != "" && model.Owner == res.Owner) {
			relevant = append(relevant, res)
		}
	}
	if len(relevant) == 0 {
		if len(resources) >= 2 {
			relevant = append(relevant, resources[len(resources)-2:]...)
		} else {
			relevant = append(relevant, resources...)
		}
	}
	return relevant
}

var tokenSplit = regexp.MustCompile(`[/_\-\s.]+`)

// nameTokens extracts comparable alphabetic tokens from a resource name.
func nameTokens(name string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, part := range tokenSplit.Split(strings.ToLower(name), -1) {
		if len(part) > 2 && isAlpha(part) {
			tokens[part] = struct{}{}
		}
	}
	return tokens
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}

func overlaps(a, b map[string]struct{}) bool {
	for t := range a {
		if _, ok := b[t]; ok {
			return true
		}
	}
	return false
}
