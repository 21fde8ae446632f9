package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sift/internal/core/domain"
)

func TestGitHubLister_ListsBlobsFromDefaultBranch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer gho_tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"name":"sift","full_name":"acme/sift","default_branch":"main",
			 "html_url":"https://github.com/acme/sift","owner":{"login":"acme"}},
			{"name":"empty","full_name":"acme/empty","default_branch":"main",
			 "html_url":"https://github.com/acme/empty","owner":{"login":"acme"}}
		]`))
	})
	mux.HandleFunc("/repos/acme/sift/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		_, _ = w.Write([]byte(`{"sha":"root","tree":[
			{"path":"README.md","type":"blob","sha":"a1"},
			{"path":"cmd","type":"tree","sha":"t1"},
			{"path":"cmd/main.go","type":"blob","sha":"b2"}
		]}`))
	})
	mux.HandleFunc("/repos/acme/empty/git/trees/main", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Git Repository is empty."}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	l := newGitHubLister()
	l.baseURL = srv.URL
	l.limiter = newRateLimiter(1000, 10)

	files, err := l.list(context.Background(), "gho_tok")

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, domain.RemoteFile{
		ID:      "b2",
		Name:    "main.go",
		Path:    "acme/sift/cmd/main.go",
		URL:     "https://github.com/acme/sift/blob/main/cmd/main.go",
		Service: domain.IntegrationGitHub,
	}, files[1])
	assert.Equal(t, "README.md", files[0].Name)
}

func TestGitHubLister_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer srv.Close()

	l := newGitHubLister()
	l.baseURL = srv.URL
	l.limiter = newRateLimiter(1000, 10)

	_, err := l.list(context.Background(), "stale")

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestGitHubLister_CapsFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/repos", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"r","full_name":"o/r","default_branch":"main",
			"html_url":"https://github.com/o/r","owner":{"login":"o"}}]`))
	})
	mux.HandleFunc("/repos/o/r/git/trees/main", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tree":[
			{"path":"a","type":"blob","sha":"1"},
			{"path":"b","type":"blob","sha":"2"},
			{"path":"c","type":"blob","sha":"3"}
		]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	l := newGitHubLister()
	l.baseURL = srv.URL
	l.limiter = newRateLimiter(1000, 10)
	l.maxFiles = 2

	files, err := l.list(context.Background(), "tok")

	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDriveLister_PagesThroughFiles(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/files", r.URL.Path)
		assert.Equal(t, "Bearer ya29.tok", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Query().Get("q"), "trashed = false")

		page := map[string]any{}
		if r.URL.Query().Get("pageToken") == "" {
			page["files"] = []map[string]string{
				{"id": "f1", "name": "budget.xlsx", "webViewLink": "https://drive.google.com/f1"},
			}
			page["nextPageToken"] = "p2"
		} else {
			page["files"] = []map[string]string{
				{"id": "f2", "name": "notes.txt", "webViewLink": "https://drive.google.com/f2"},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	l := newDriveLister()
	l.endpoint = srv.URL + "/"
	l.limiter = newRateLimiter(1000, 10)

	files, err := l.list(context.Background(), "ya29.tok")

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, files, 2)
	assert.Equal(t, domain.RemoteFile{
		ID:      "f1",
		Name:    "budget.xlsx",
		Path:    "budget.xlsx",
		URL:     "https://drive.google.com/f1",
		Service: domain.IntegrationGoogle,
	}, files[0])
	assert.Equal(t, "notes.txt", files[1].Name)
}

func TestDriveLister_RateLimitedStartsBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"rate limit"}}`))
	}))
	defer srv.Close()

	l := newDriveLister()
	l.endpoint = srv.URL + "/"
	l.limiter = newRateLimiter(1000, 10)

	_, err := l.list(context.Background(), "tok")

	require.Error(t, err)
	l.limiter.mu.Lock()
	defer l.limiter.mu.Unlock()
	assert.True(t, l.limiter.retryAt.After(time.Now()))
}

// rewriteTransport sends every request to target, keeping the path.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func TestNotionLister_PagesAndDatabases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Bearer secret_ntn", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object": "list",
			"results": [
				{"object": "page", "id": "p1", "url": "https://www.notion.so/p1",
				 "properties": {"Name": {"id": "title", "type": "title",
				   "title": [{"type": "text", "text": {"content": "Roadmap"}, "plain_text": "Roadmap"}]}}},
				{"object": "database", "id": "d1", "url": "https://www.notion.so/d1",
				 "title": [{"type": "text", "text": {"content": "Tasks"}, "plain_text": "Tasks"}],
				 "properties": {}}
			],
			"has_more": false
		}`))
	}))
	defer srv.Close()

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	l := newNotionLister()
	l.httpClient = &http.Client{Transport: rewriteTransport{target: target}}

	files, err := l.list(context.Background(), "secret_ntn")

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "Roadmap", files[0].Name)
	assert.Equal(t, "https://www.notion.so/p1", files[0].URL)
	assert.Equal(t, "Tasks", files[1].Name)
	assert.Equal(t, domain.IntegrationNotion, files[1].Service)
}

func TestRateLimiter_ObserveHeaders(t *testing.T) {
	l := newRateLimiter(1000, 10)
	reset := time.Now().Add(time.Hour).Unix()

	resp := &http.Response{StatusCode: http.StatusForbidden, Header: http.Header{}}
	resp.Header.Set(headerRateRemaining, "0")
	resp.Header.Set(headerRateReset, strconv.FormatInt(reset, 10))
	resp.Header.Set(headerRetryAfter, "7")
	l.observe(resp)

	assert.Equal(t, 0, l.remaining)
	assert.Equal(t, reset, l.resetAt.Unix())
	assert.WithinDuration(t, time.Now().Add(7*time.Second), l.retryAt, time.Second)
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	l := newRateLimiter(1000, 10)
	l.backoff(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, l.wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_WaitPassesWithQuota(t *testing.T) {
	l := newRateLimiter(1000, 10)
	resp := &http.Response{StatusCode: http.StatusOK, Header: http.Header{}}
	resp.Header.Set(headerRateRemaining, "4000")
	l.observe(resp)

	assert.NoError(t, l.wait(context.Background()))
}
