package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sift/internal/core/ports/driven"
)

func TestNewLLMService_Defaults(t *testing.T) {
	svc := NewLLMService(LLMConfig{})

	assert.Equal(t, DefaultLLMModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL, svc.api.BaseURL())
}

func TestChat_OmitsEmptyOptions(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"pdf report"},"done":true}`))
	}))
	defer srv.Close()

	svc := NewLLMService(LLMConfig{BaseURL: srv.URL, Model: "phi3"})
	out, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: driven.RoleUser, Content: "complete"}}, driven.ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, "pdf report", out)
	assert.Equal(t, "phi3", raw["model"])
	assert.Equal(t, false, raw["stream"])
	assert.NotContains(t, raw, "options")
}

func TestChat_SendsOptions(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"A resume."},"done":true}`))
	}))
	defer srv.Close()

	svc := NewLLMService(LLMConfig{BaseURL: srv.URL})
	out, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: "sum"},
		{Role: driven.RoleUser, Content: "cv.pdf"},
	}, driven.ChatOptions{MaxTokens: 60, Temperature: 0.2})

	require.NoError(t, err)
	assert.Equal(t, "A resume.", out)
	require.NotNil(t, got.Options)
	assert.Equal(t, 60, got.Options.NumPredict)
	assert.Len(t, got.Messages, 2)
}

func TestChat_ModelMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model \"x\" not found, try pulling it first"}`))
	}))
	defer srv.Close()

	_, err := NewLLMService(LLMConfig{BaseURL: srv.URL}).Chat(context.Background(), nil, driven.ChatOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama: status 404")
	assert.Contains(t, err.Error(), "try pulling it first")
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	assert.NoError(t, NewLLMService(LLMConfig{BaseURL: srv.URL}).Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	assert.ErrorContains(t, NewLLMService(LLMConfig{BaseURL: url}).Ping(context.Background()), "ollama: ")
}
