package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
	"github.com/custodia-labs/sift/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// minHistoryQueryLength skips one-character queries.
const minHistoryQueryLength = 2

// HistoryService records submitted queries. A nil store records nothing.
type HistoryService struct {
	store driven.HistoryStore
	now   func() time.Time
}

// NewHistoryService creates a history service over store.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store, now: time.Now}
}

// Record stores a submitted query.
func (s *HistoryService) Record(ctx context.Context, query string, resultCount int) error {
	query = strings.TrimSpace(query)
	if s.store == nil || len(query) < minHistoryQueryLength {
		return nil
	}
	return s.store.Add(ctx, domain.HistoryEntry{
		ID:          uuid.NewString(),
		Query:       query,
		ResultCount: resultCount,
		SearchedAt:  s.now().UTC(),
	})
}

// Recent returns up to limit entries, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.Recent(ctx, limit)
}

// Clear removes every entry.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Clear(ctx)
}
