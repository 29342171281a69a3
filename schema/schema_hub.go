package schema

import "time"

// FileEntry is one file listed for a hub-hosted artifact.
type FileEntry struct {
	Path string
	Size int64 // Bytes; zero when the hub does not report blob sizes
}

// ModelInfo is the metadata facet of a hub-hosted model.
type ModelInfo struct {
	ID            string
	Author        string
	Downloads     int64
	Likes         int64
	LastModified  time.Time
	Tags          []string
	PipelineTag   string
	LibraryName   string
	HasModelIndex bool // Structured evaluation results are published
	Files         []FileEntry
}

// DatasetInfo is the metadata facet of a hub-hosted dataset.
type DatasetInfo struct {
	ID           string
	Author       string
	Downloads    int64
	Likes        int64
	LastModified time.Time
	Tags         []string
}

// WeightFileBytes sums the bytes of files that look like model weights.
func (m *ModelInfo) WeightFileBytes() int64 {
	var total int64
	for _, f := range m.Files {
		if IsWeightFile(f.Path) {
			total += f.Size
		}
	}
	return total
}
