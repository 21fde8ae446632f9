package driving

import (
	"context"

	"github.com/custodia-labs/sift/internal/core/domain"
)

// SearchService runs one-shot searches for the CLI and MCP adapters.
type SearchService interface {
	// Search returns up to limit results for query. A limit of zero
	// uses the configured default.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}

// SearchRequest identifies one issued query. Gen increases with every
// Submit; only the response carrying the latest Gen is applied.
type SearchRequest struct {
	Gen   uint64
	Query string
}

// SearchResponse is the outcome of a SearchRequest.
type SearchResponse struct {
	Gen     uint64
	Query   string
	Results []domain.SearchResult
	Err     error
}

// ResultStore is the live result list behind the search box. Callers
// Submit a query, Fetch it off the UI goroutine and Apply the response;
// responses overtaken by a later Submit are discarded.
type ResultStore interface {
	Submit(query string) (SearchRequest, bool)
	Fetch(ctx context.Context, req SearchRequest) SearchResponse
	Apply(resp SearchResponse) bool

	Results() []domain.SearchResult
	Query() string
	Failed() bool
	Err() error
	Settings() domain.SearchSettings
}
