//nolint:noctx // plain http.Get keeps the redirect requests short
package oauth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listen(t *testing.T, path, state string) *Redirect {
	t.Helper()
	r, err := Listen(0, path, state)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// visit plays the browser coming back from the provider.
func visit(t *testing.T, r *Redirect, path string, q url.Values) (int, string) {
	t.Helper()
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d%s?%s", r.Port(), path, q.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func wait(t *testing.T, r *Redirect) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return r.Wait(ctx)
}

func TestListen_URL(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", DefaultCallbackPath},
		{"gh_auth_callback", "/gh_auth_callback"},
		{"/ntn_oauth_callback", "/ntn_oauth_callback"},
	}
	for _, tt := range tests {
		r := listen(t, tt.path, "s")

		assert.NotZero(t, r.Port())
		assert.Equal(t, fmt.Sprintf("http://localhost:%d%s", r.Port(), tt.want), r.URL())
	}
}

func TestListen_PortTaken(t *testing.T) {
	first := listen(t, "", "a")

	_, err := Listen(first.Port(), "", "b")

	assert.ErrorContains(t, err, "oauth: listen")
}

func TestRedirect_Code(t *testing.T) {
	r := listen(t, "/slack_callback", "st-1")

	status, body := visit(t, r, "/slack_callback", url.Values{"code": {"xoxc-9"}, "state": {"st-1"}})
	code, err := wait(t, r)

	require.NoError(t, err)
	assert.Equal(t, "xoxc-9", code)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Signed in to Sift")
}

func TestRedirect_Failures(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		check func(t *testing.T, err error)
	}{
		{
			name:  "state mismatch",
			query: url.Values{"code": {"c"}, "state": {"forged"}},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrStateMismatch) },
		},
		{
			name:  "no code",
			query: url.Values{"state": {"st"}},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNoCode) },
		},
		{
			name:  "provider error",
			query: url.Values{"error": {"access_denied"}, "error_description": {"user said no"}},
			check: func(t *testing.T, err error) {
				var pe *ProviderError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, "access_denied", pe.Code)
				assert.EqualError(t, err, "oauth: access_denied: user said no")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := listen(t, "", "st")

			status, body := visit(t, r, DefaultCallbackPath, tt.query)
			code, err := wait(t, r)

			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, "Sign-in failed")
			assert.Empty(t, code)
			tt.check(t, err)
		})
	}
}

func TestRedirect_EscapesProviderText(t *testing.T) {
	r := listen(t, "", "st")

	_, body := visit(t, r, DefaultCallbackPath, url.Values{"error": {"x"}, "error_description": {"<script>alert(1)</script>"}})

	assert.NotContains(t, body, "<script>alert")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRedirect_FirstOutcomeWins(t *testing.T) {
	r := listen(t, "", "st")

	visit(t, r, DefaultCallbackPath, url.Values{"code": {"first"}, "state": {"st"}})
	status, _ := visit(t, r, DefaultCallbackPath, url.Values{"state": {"forged"}})
	code, err := wait(t, r)

	assert.Equal(t, http.StatusOK, status)
	require.NoError(t, err)
	assert.Equal(t, "first", code)
}

func TestRedirect_OnlyGetOnPath(t *testing.T) {
	r := listen(t, "/gh_auth_callback", "s")

	resp, err := http.Post(fmt.Sprintf("http://127.0.0.1:%d/gh_auth_callback", r.Port()), "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	status, _ := visit(t, r, "/callback", url.Values{"code": {"c"}, "state": {"s"}})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRedirect_WaitHonoursContext(t *testing.T) {
	r := listen(t, "", "s")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedirect_CloseTwice(t *testing.T) {
	r, err := Listen(0, "", "s")
	require.NoError(t, err)

	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestFindAvailablePort(t *testing.T) {
	port, err := FindAvailablePort(35435, 35535)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, port, 35435)
	assert.LessOrEqual(t, port, 35535)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	taken := ln.Addr().(*net.TCPAddr).Port

	_, err = FindAvailablePort(taken, taken)
	assert.ErrorContains(t, err, "no available port")

	_, err = FindAvailablePort(9000, 8000)
	assert.Error(t, err)
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	require.NoError(t, err)
	b, err := GenerateState()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
