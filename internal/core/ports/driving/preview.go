package driving

import (
	"context"

	"github.com/custodia-labs/sift/internal/core/domain"
)

// PreviewService builds the preview for a result.
type PreviewService interface {
	// Load builds the preview. Failures are reported in Preview.Err.
	Load(ctx context.Context, item domain.SearchResult) domain.Preview
}
