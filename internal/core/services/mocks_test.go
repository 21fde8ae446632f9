package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
)

// mockSearchClient is a function-field mock of driven.SearchClient.
type mockSearchClient struct {
	mu        sync.Mutex
	calls     []string
	QueryFunc func(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}

func (m *mockSearchClient) Query(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, query)
	m.mu.Unlock()
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockSearchClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockClipboard records writes.
type mockClipboard struct {
	text string
	err  error
}

func (m *mockClipboard) WriteText(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

// mockBridge is a function-field mock of driven.NativeBridge.
type mockBridge struct {
	StartOAuthFunc func(ctx context.Context, service domain.Integration) (string, error)
	ListFilesFunc  func(ctx context.Context, service domain.Integration, token string) ([]domain.RemoteFile, error)
	ReadFileFunc   func(ctx context.Context, path string) ([]byte, error)
	opened         []string
	exits          int
	done           chan struct{}
}

func (m *mockBridge) StartOAuth(ctx context.Context, service domain.Integration) (string, error) {
	if m.StartOAuthFunc != nil {
		return m.StartOAuthFunc(ctx, service)
	}
	return "", nil
}

func (m *mockBridge) ListFiles(ctx context.Context, service domain.Integration, token string) ([]domain.RemoteFile, error) {
	if m.ListFilesFunc != nil {
		return m.ListFilesFunc(ctx, service, token)
	}
	return nil, nil
}

func (m *mockBridge) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(ctx, path)
	}
	return nil, domain.ErrNotFound
}

func (m *mockBridge) OpenViewer(_ context.Context, target string) error {
	m.opened = append(m.opened, target)
	return nil
}

func (m *mockBridge) Exit() { m.exits++ }

func (m *mockBridge) Done() <-chan struct{} { return m.done }

// mockLLM is a function-field mock of driven.LLMService.
type mockLLM struct {
	ChatFunc func(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error)
	last     []driven.ChatMessage
}

func (m *mockLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.last = messages
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages, opts)
	}
	return "", nil
}

func (m *mockLLM) ModelName() string            { return "mock" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockPromptStore returns fixed prompts.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", domain.ErrNotFound
}

func (m *mockPromptStore) Reload() {}

// mockExtractor returns fixed text.
type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	return m.text, m.err
}

// mockImages returns fixed image info.
type mockImages struct {
	got []byte
}

func (m *mockImages) Inspect(data []byte) (domain.ImageInfo, error) {
	m.got = data
	return domain.ImageInfo{Format: "png", Width: 2, Height: 3, Bytes: len(data)}, nil
}

func sampleResults(ids ...string) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.SearchResult{
			ID:       id,
			Document: "content of " + id,
			FilePath: "/home/u/docs/" + id + ".txt",
			Location: domain.LocationLocal,
		})
	}
	return out
}
