package driving

import (
	"context"

	"github.com/custodia-labs/sift/internal/core/domain"
)

// HistoryService records and lists submitted queries.
type HistoryService interface {
	// Record stores a submitted query.
	Record(ctx context.Context, query string, resultCount int) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error
}
