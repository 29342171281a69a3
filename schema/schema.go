// Package schema has data types shared across scoring, gating and output.
package schema

import "fmt"

// ArtifactKind categorizes a locator within an artifact triplet.
type ArtifactKind string

// Artifact kinds.
const (
	ModelKind   ArtifactKind = "MODEL"
	DatasetKind ArtifactKind = "DATASET"
	CodeKind    ArtifactKind = "CODE"
)

// Hosting platforms recognized by the locator parser.
const (
	HubPlatform     = "huggingface"
	GitHubPlatform  = "github"
	UnknownPlatform = "unknown"
)

// ArtifactRef is a resolved locator for one hosted resource.
type ArtifactRef struct {
	URL      string       // Original URL as given
	Kind     ArtifactKind // MODEL, DATASET or CODE
	Name     string       // Display name, e.g. "bert-base-uncased" or "owner/repo"
	Platform string       // huggingface, github or unknown
	Owner    string       // Namespace owner, may be empty
	Repo     string       // Repository name, may be empty
}

// IsZero reports whether the ref carries no locator at all.
func (r ArtifactRef) IsZero() bool {
	return r.URL == "" && r.Name == ""
}

// RepoID returns the "owner/repo" identifier used by hub APIs.
func (r ArtifactRef) RepoID() string {
	if r.Owner != "" && r.Repo != "" {
		return fmt.Sprintf("%s/%s", r.Owner, r.Repo)
	}
	if r.Repo != "" {
		return r.Repo
	}
	return r.Name
}

// Triplet groups a model locator with its associated datasets and code
// repositories. Only the model locator is mandatory.
type Triplet struct {
	Model    ArtifactRef
	Datasets []ArtifactRef
	Code     []ArtifactRef
}
