package driven

import (
	"context"

	"github.com/custodia-labs/sift/internal/core/domain"
)

// SearchClient queries the external vector-search service.
// Ranking and indexing live entirely in that service.
type SearchClient interface {
	// Query returns up to limit results in the order the service ranked them.
	// Errors wrap domain.ErrNetworkFailure or domain.ErrMalformedResponse.
	Query(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}
