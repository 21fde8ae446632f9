package driven

import (
	"context"

	"github.com/custodia-labs/sift/internal/core/domain"
)

// HistoryStore persists submitted queries.
type HistoryStore interface {
	// Add records an entry.
	Add(ctx context.Context, entry domain.HistoryEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
