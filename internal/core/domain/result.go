package domain

import (
	"net/url"
	"path"
	"strings"
)

// LocationLocal marks a result that lives on the local filesystem.
const LocationLocal = "local"

// SearchResult is one match returned by the search service.
// Results are immutable once received and are replaced as a whole batch.
type SearchResult struct {
	// ID is the backend identifier, unique within a batch.
	ID string `json:"id"`

	// Document is the matched text. For images it carries the raw bytes
	// base64-encoded.
	Document string `json:"document"`

	// FilePath is an absolute local path or a remote URL.
	FilePath string `json:"filepath"`

	// Location tags where the file lives ("local" or an integration name).
	Location string `json:"location"`

	// Distance is the similarity distance. Lower means closer.
	Distance float64 `json:"distance"`
}

// IsLocal reports whether the result refers to a local file.
func (r SearchResult) IsLocal() bool {
	return r.Location == "" || r.Location == LocationLocal
}

// Name returns the last path element of FilePath.
func (r SearchResult) Name() string {
	return baseName(r.FilePath)
}

// FileType classifies the result by its file path.
func (r SearchResult) FileType() FileType {
	return Classify(r.FilePath)
}

// baseName strips URL query and fragment before taking the last element.
func baseName(p string) string {
	if p == "" {
		return ""
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" && u.Host != "" {
		p = u.Path
	}
	p = strings.TrimRight(strings.ReplaceAll(p, "\\", "/"), "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}
