// Package oauth serves the loopback redirect of an authorization code flow
// and opens the consent page in the user's browser.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultCallbackPath is used when a provider names no path.
const DefaultCallbackPath = "/callback"

var (
	// ErrStateMismatch means the redirect carried a state we did not issue.
	ErrStateMismatch = errors.New("oauth: state mismatch")
	// ErrNoCode means the redirect carried neither a code nor an error.
	ErrNoCode = errors.New("oauth: no authorization code")
)

// ProviderError is an error reported by the provider on the redirect.
type ProviderError struct {
	Code        string
	Description string
}

func (e *ProviderError) Error() string {
	if e.Description == "" {
		return "oauth: " + e.Code
	}
	return "oauth: " + e.Code + ": " + e.Description
}

type outcome struct {
	code string
	err  error
}

// Redirect receives one authorization redirect on 127.0.0.1. Only the
// first redirect counts; later ones get a page but change nothing.
type Redirect struct {
	path  string
	state string
	port  int

	srv  *http.Server
	once sync.Once
	done chan outcome

	closeOnce sync.Once
	closeErr  error
}

// Listen binds port (0 picks a free one) and serves path until Close.
func Listen(port int, path, state string) (*Redirect, error) {
	if path == "" {
		path = DefaultCallbackPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("oauth: listen: %w", err)
	}

	r := &Redirect{
		path:  path,
		state: state,
		port:  ln.Addr().(*net.TCPAddr).Port,
		done:  make(chan outcome, 1),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+path, r.serve)
	r.srv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := r.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.settle(outcome{err: err})
		}
	}()
	return r, nil
}

// URL is the redirect_uri to register with the provider.
func (r *Redirect) URL() string {
	return fmt.Sprintf("http://localhost:%d%s", r.port, r.path)
}

// Port is the bound port.
func (r *Redirect) Port() int {
	return r.port
}

// Wait returns the authorization code once the browser is redirected back.
func (r *Redirect) Wait(ctx context.Context) (string, error) {
	select {
	case o := <-r.done:
		return o.code, o.err
	case <-ctx.Done():
		return "", fmt.Errorf("oauth: waiting for redirect: %w", ctx.Err())
	}
}

// Close stops the server. It is safe to call more than once.
func (r *Redirect) Close() error {
	r.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		r.closeErr = r.srv.Shutdown(ctx)
	})
	return r.closeErr
}

func (r *Redirect) serve(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	o := outcome{code: q.Get("code")}
	switch {
	case q.Get("error") != "":
		o = outcome{err: &ProviderError{Code: q.Get("error"), Description: q.Get("error_description")}}
	case q.Get("state") != r.state:
		o = outcome{err: ErrStateMismatch}
	case o.code == "":
		o = outcome{err: ErrNoCode}
	}
	r.settle(o)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := pageData{Title: "Signed in to Sift", Body: "You can close this window and return to Sift."}
	if o.err != nil {
		page = pageData{Title: "Sign-in failed", Body: o.err.Error()}
	}
	_ = pageTmpl.Execute(w, page)
}

func (r *Redirect) settle(o outcome) {
	r.once.Do(func() { r.done <- o })
}

type pageData struct {
	Title string
	Body  string
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Sift</title>
<style>
body { font-family: system-ui, sans-serif; display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0; background: #101014; }
main { text-align: center; background: #1C1C22; border: 1px solid #2E2E38; border-radius: 12px; padding: 40px 56px; }
h1 { color: #F2F2F5; font-size: 22px; margin: 0 0 8px; }
p { color: #9A9AA6; font-size: 15px; margin: 0; }
</style>
</head>
<body><main><h1>{{.Title}}</h1><p>{{.Body}}</p></main></body>
</html>
`))
