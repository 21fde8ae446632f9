package mcp

import (
	"context"

	"github.com/custodia-labs/sift/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
	limits  []int
}

func (m *mockSearchService) Search(_ context.Context, _ string, limit int) ([]domain.SearchResult, error) {
	m.limits = append(m.limits, limit)
	return m.results, m.err
}

// mockAssistService is a mock implementation of driving.AssistService.
type mockAssistService struct {
	available bool
	summary   string
	content   string
}

func (m *mockAssistService) Suggest(_ context.Context, _ string) string { return "" }

func (m *mockAssistService) Summarise(_ context.Context, content, _ string) string {
	m.content = content
	return m.summary
}

func (m *mockAssistService) Highlight(_ context.Context, content, _ string) string { return content }

func (m *mockAssistService) Available() bool { return m.available }

// mockPreviewService is a mock implementation of driving.PreviewService.
type mockPreviewService struct {
	preview domain.Preview
}

func (m *mockPreviewService) Load(_ context.Context, _ domain.SearchResult) domain.Preview {
	return m.preview
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries []domain.HistoryEntry
	err     error
}

func (m *mockHistoryService) Record(_ context.Context, _ string, _ int) error { return m.err }

func (m *mockHistoryService) Recent(_ context.Context, _ int) ([]domain.HistoryEntry, error) {
	return m.entries, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error { return m.err }

// mockIntegrationService is a mock implementation of driving.IntegrationService.
type mockIntegrationService struct {
	creds []domain.IntegrationCredential
	files []domain.RemoteFile
	err   error
}

func (m *mockIntegrationService) StartOAuth(_ context.Context, service domain.Integration) domain.IntegrationCredential {
	return domain.IntegrationCredential{Service: service}
}

func (m *mockIntegrationService) Credential(service domain.Integration) (domain.IntegrationCredential, bool) {
	for _, c := range m.creds {
		if c.Service == service {
			return c, true
		}
	}
	return domain.IntegrationCredential{}, false
}

func (m *mockIntegrationService) Credentials() []domain.IntegrationCredential { return m.creds }

func (m *mockIntegrationService) ListFiles(_ context.Context, _ domain.Integration) ([]domain.RemoteFile, error) {
	return m.files, m.err
}

func (m *mockIntegrationService) Quit() {}
