package driving

import (
	"context"

	"github.com/custodia-labs/sift/internal/core/domain"
)

// ActionService lists and runs palette actions for a result.
type ActionService interface {
	// ActionsFor returns the actions for a file type, type-specific first.
	ActionsFor(ft domain.FileType) []domain.ActionDescriptor

	// Execute runs cmd against item. Unknown commands are logged and ignored.
	Execute(ctx context.Context, cmd domain.Command, item domain.SearchResult) error
}
