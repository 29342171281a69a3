package schema

import (
	"path"
	"strings"
)

// FileDelta is one numstat entry within a commit.
type FileDelta struct {
	Path    string
	Added   int
	Deleted int
	Binary  bool // numstat reported "-" for the line counts
}

// Commit is one parsed entry of a repository log.
type Commit struct {
	Hash    string
	Author  string
	Subject string
	Files   []FileDelta
}

// RepoHistory is a locally cloned repository plus its parsed log.
type RepoHistory struct {
	Dir     string // Working tree on disk, removed when the context closes
	Commits []Commit
}

// UniqueAuthors counts distinct commit authors in the history.
func (h *RepoHistory) UniqueAuthors() int {
	authors := make(map[string]struct{})
	for _, c := range h.Commits {
		if c.Author != "" {
			authors[c.Author] = struct{}{}
		}
	}
	return len(authors)
}

// weightExtensions are serialized model weights, never reviewed as code.
var weightExtensions = map[string]struct{}{
	".pt": {}, ".pth": {}, ".bin": {}, ".safetensors": {}, ".h5": {},
	".pb": {}, ".onnx": {}, ".tflite": {}, ".ckpt": {}, ".pkl": {},
	".pickle": {}, ".npz": {}, ".npy": {}, ".weights": {},
}

// codeExtensions are counted toward review coverage.
var codeExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {}, ".java": {},
	".cpp": {}, ".c": {}, ".h": {}, ".hpp": {}, ".go": {}, ".rs": {},
	".rb": {}, ".php": {}, ".swift": {}, ".kt": {}, ".scala": {},
	".cs": {}, ".r": {}, ".m": {}, ".sh": {}, ".yaml": {}, ".yml": {},
	".json": {}, ".toml": {}, ".xml": {},
}

// IsWeightFile reports whether p looks like a serialized weight file.
func IsWeightFile(p string) bool {
	_, ok := weightExtensions[strings.ToLower(path.Ext(p))]
	return ok
}

// IsCodeFile reports whether p counts as reviewable source code.
func IsCodeFile(p string) bool {
	if IsWeightFile(p) {
		return false
	}
	_, ok := codeExtensions[strings.ToLower(path.Ext(p))]
	return ok
}
