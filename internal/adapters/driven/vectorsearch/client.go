// Package vectorsearch implements driven.SearchClient against the local
// vector-search service.
//
// The service answers GET {base}/query/{query}/{limit} with a JSON envelope
// whose results are parallel arrays nested one level deep, one inner array
// per query text:
//
//	{"status": "200", "results": {"ids": [[...]], "documents": [[...]],
//	 "metadatas": [[{"filepath": "...", "location": "..."}]], "distances": [[...]]}}
//
// Failures inside the service are reported as {"status": "500", "error": "..."}.
package vectorsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
	"github.com/custodia-labs/sift/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchClient = (*Client)(nil)

const (
	defaultBaseURL = domain.DefaultSearchBaseURL
	defaultTimeout = domain.DefaultTimeout

	// maxResponseBytes bounds the body read; image results embed base64 payloads.
	maxResponseBytes = 64 << 20
)

// Config configures the search client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client queries the vector-search service over HTTP.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a search client.
func NewClient(cfg Config) *Client {
	c := &Client{}
	c.Reconfigure(cfg)
	return c
}

// Reconfigure points the client at a new service or timeout. Requests
// already sent finish against the old one.
func (c *Client) Reconfigure(cfg Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c.mu.Lock()
	c.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	c.httpClient = &http.Client{Timeout: cfg.Timeout}
	c.mu.Unlock()
}

// BaseURL returns the service root in use.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// envelope is the outer response body.
type envelope struct {
	Status  json.RawMessage `json:"status"`
	Error   string          `json:"error"`
	Results *queryResults   `json:"results"`
}

type queryResults struct {
	IDs       [][]string         `json:"ids"`
	Documents [][]*string        `json:"documents"`
	Metadatas [][]map[string]any `json:"metadatas"`
	Distances [][]float64        `json:"distances"`
}

// Query returns up to limit results in service order.
func (c *Client) Query(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	c.mu.RLock()
	base, hc := c.baseURL, c.httpClient
	c.mu.RUnlock()

	endpoint := fmt.Sprintf("%s/query/%s/%d", base, url.PathEscape(query), limit)
	logger.Debug("vectorsearch: GET %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrNetworkFailure, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrNetworkFailure, resp.StatusCode)
	}

	return Decode(body)
}

// Decode parses a response body into results.
func Decode(body []byte) ([]domain.SearchResult, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	if status := statusCode(env.Status); status != "" && status != "200" {
		msg := env.Error
		if msg == "" {
			msg = "status " + status
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrMalformedResponse, msg)
	}
	if env.Results == nil {
		return nil, fmt.Errorf("%w: missing results", domain.ErrMalformedResponse)
	}

	return zip(env.Results)
}

// zip joins the first inner array of each field by index.
func zip(r *queryResults) ([]domain.SearchResult, error) {
	if len(r.IDs) == 0 {
		return nil, nil
	}
	ids := r.IDs[0]
	if len(ids) == 0 {
		return nil, nil
	}

	docs, err := first(r.Documents, len(ids), "documents")
	if err != nil {
		return nil, err
	}
	metas, err := first(r.Metadatas, len(ids), "metadatas")
	if err != nil {
		return nil, err
	}
	dists, err := first(r.Distances, len(ids), "distances")
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(ids))
	for i, id := range ids {
		meta := metas[i]
		path := stringField(meta, "filepath")
		if path == "" {
			return nil, fmt.Errorf("%w: result %q has no filepath", domain.ErrMalformedResponse, id)
		}
		location := stringField(meta, "location")
		if location == "" {
			location = domain.LocationLocal
		}

		var doc string
		if docs[i] != nil {
			doc = *docs[i]
		}

		results = append(results, domain.SearchResult{
			ID:       id,
			Document: doc,
			FilePath: path,
			Location: location,
			Distance: dists[i],
		})
	}
	return results, nil
}

// first returns outer[0] and checks it lines up with the ids.
func first[T any](outer [][]T, n int, field string) ([]T, error) {
	if len(outer) == 0 || len(outer[0]) != n {
		return nil, fmt.Errorf("%w: %s does not match ids", domain.ErrMalformedResponse, field)
	}
	return outer[0], nil
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// statusCode accepts the status as either a JSON string or number.
func statusCode(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.Atoi(n.String()); err == nil {
			return strconv.Itoa(i)
		}
	}
	return string(raw)
}
