package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
	"github.com/custodia-labs/sift/internal/core/ports/driving"
	"github.com/custodia-labs/sift/internal/logger"
)

// Ensure ResultStore implements the interfaces.
var (
	_ driving.SearchService = (*ResultStore)(nil)
	_ driving.ResultStore   = (*ResultStore)(nil)
)

// SearchRequest and SearchResponse are the driving port types.
type (
	SearchRequest  = driving.SearchRequest
	SearchResponse = driving.SearchResponse
)

// ResultStore holds the current result list and decides which responses
// may replace it.
type ResultStore struct {
	client driven.SearchClient

	gen atomic.Uint64

	mu       sync.RWMutex
	settings domain.SearchSettings
	cache    *expirable.LRU[string, []domain.SearchResult]
	current  string
	results []domain.SearchResult
	err     error
}

// NewResultStore creates a result store backed by client.
// A CacheSize of zero disables response caching.
func NewResultStore(client driven.SearchClient, settings domain.SearchSettings) *ResultStore {
	s := &ResultStore{client: client}
	s.Reconfigure(settings)
	return s
}

// Reconfigure applies new search settings. The cache is rebuilt empty;
// the current list stays until the next response.
func (s *ResultStore) Reconfigure(settings domain.SearchSettings) {
	defaults := domain.DefaultAppSettings().Search
	if settings.Limit <= 0 || settings.Limit > domain.MaxSearchLimit {
		settings.Limit = defaults.Limit
	}
	if settings.Timeout <= 0 {
		settings.Timeout = defaults.Timeout
	}
	if settings.Debounce <= 0 {
		settings.Debounce = defaults.Debounce
	}
	if settings.CacheTTL <= 0 {
		settings.CacheTTL = defaults.CacheTTL
	}
	if !settings.EmptyQuery.IsValid() {
		settings.EmptyQuery = defaults.EmptyQuery
	}

	var cache *expirable.LRU[string, []domain.SearchResult]
	if settings.CacheSize > 0 {
		cache = expirable.NewLRU[string, []domain.SearchResult](settings.CacheSize, nil, settings.CacheTTL)
	}

	s.mu.Lock()
	s.settings = settings
	s.cache = cache
	s.mu.Unlock()
	logger.Debug("search: limit=%d timeout=%s cache=%d/%s", settings.Limit, settings.Timeout, settings.CacheSize, settings.CacheTTL)
}

// Submit makes query the current one and returns the request to fetch.
// It returns false for an empty query: no request is needed and the list
// is cleared or kept according to the empty query policy. Either way any
// response still in flight becomes stale.
func (s *ResultStore) Submit(query string) (SearchRequest, bool) {
	gen := s.gen.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = query
	if strings.TrimSpace(query) == "" {
		if s.settings.EmptyQuery == domain.EmptyQueryClear {
			s.results = nil
		}
		s.err = nil
		logger.Debug("search: empty query (gen=%d, policy=%s)", gen, s.settings.EmptyQuery)
		return SearchRequest{Gen: gen, Query: query}, false
	}

	logger.Debug("search: submit %q (gen=%d)", query, gen)
	return SearchRequest{Gen: gen, Query: query}, true
}

// Fetch runs req against the search service within the configured timeout.
// It never fails: errors are carried in the response.
func (s *ResultStore) Fetch(ctx context.Context, req SearchRequest) SearchResponse {
	resp := SearchResponse{Gen: req.Gen, Query: req.Query}
	results, err := s.fetch(ctx, req.Query, 0)
	if err != nil {
		resp.Err = err
		return resp
	}
	resp.Results = results
	return resp
}

// Apply replaces the list with resp when resp belongs to the latest
// request. It reports whether the response was applied.
func (s *ResultStore) Apply(resp SearchResponse) bool {
	if current := s.gen.Load(); resp.Gen != current {
		logger.Debug("search: dropping stale response for %q (gen=%d, current=%d)", resp.Query, resp.Gen, current)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if resp.Err != nil {
		s.results = nil
		s.err = resp.Err
		logger.Warn("search %q failed: %v", resp.Query, resp.Err)
		return true
	}
	s.results = resp.Results
	s.err = nil
	return true
}

// Search runs a one-shot query outside the generation protocol. limit is
// clamped to the configured limit; zero or less means the configured limit.
func (s *ResultStore) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	return s.fetch(ctx, query, limit)
}

// fetch applies the limit, the cache and the client-side timeout.
func (s *ResultStore) fetch(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	settings, cache := s.settings, s.cache
	s.mu.RUnlock()

	if limit <= 0 || limit > settings.Limit {
		limit = settings.Limit
	}
	key := cacheKey(query, limit)
	if cache != nil {
		if cached, ok := cache.Get(key); ok {
			logger.Debug("search: cache hit for %q", query)
			return cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, settings.Timeout)
	defer cancel()

	results, err := s.client.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}
	if cache != nil {
		cache.Add(key, results)
	}
	return results, nil
}

// Results returns the current list in backend order.
func (s *ResultStore) Results() []domain.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results
}

// Query returns the most recently submitted query.
func (s *ResultStore) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Failed reports whether the last applied response was an error.
func (s *ResultStore) Failed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err != nil
}

// Err returns the error of the last applied response.
func (s *ResultStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Generation returns the generation of the latest request.
func (s *ResultStore) Generation() uint64 {
	return s.gen.Load()
}

// Settings returns the effective search settings.
func (s *ResultStore) Settings() domain.SearchSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// InvalidateCache drops every cached response.
func (s *ResultStore) InvalidateCache() {
	s.mu.RLock()
	cache := s.cache
	s.mu.RUnlock()
	if cache != nil {
		cache.Purge()
	}
}

func cacheKey(query string, limit int) string {
	return fmt.Sprintf("%d\x00%s", limit, query)
}
