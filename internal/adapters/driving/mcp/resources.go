package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sift/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for sift resources.
	uriScheme = "sift://"

	historyResourceLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recently submitted search queries",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "integrations",
		Name:        "integrations",
		Description: "Connected services and their sign-in state",
		MIMEType:    "application/json",
	}, s.handleIntegrationsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "integrations/{service}/files",
		Name:        "integration-files",
		Description: "Files visible to a connected service",
		MIMEType:    "application/json",
	}, s.handleIntegrationFilesResource)
}

// handleHistoryResource returns the most recent queries, newest first.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, []any{})
	}

	entries, err := s.ports.History.Recent(ctx, historyResourceLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	type entryInfo struct {
		Query       string    `json:"query"`
		ResultCount int       `json:"result_count"`
		SearchedAt  time.Time `json:"searched_at"`
	}

	infos := make([]entryInfo, len(entries))
	for i, e := range entries {
		infos[i] = entryInfo{Query: e.Query, ResultCount: e.ResultCount, SearchedAt: e.SearchedAt}
	}
	return jsonResult(req.Params.URI, infos)
}

// handleIntegrationsResource returns each integration's status. Tokens are
// never included.
func (s *Server) handleIntegrationsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Integrations == nil {
		return jsonResult(req.Params.URI, []any{})
	}

	type integrationInfo struct {
		Service string `json:"service"`
		Name    string `json:"name"`
		Status  string `json:"status"`
	}

	creds := s.ports.Integrations.Credentials()
	infos := make([]integrationInfo, len(creds))
	for i, c := range creds {
		infos[i] = integrationInfo{
			Service: c.Service.String(),
			Name:    c.Service.Description(),
			Status:  c.Status(),
		}
	}
	return jsonResult(req.Params.URI, infos)
}

// handleIntegrationFilesResource lists files for a connected service.
func (s *Server) handleIntegrationFilesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Integrations == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	service := extractService(req.Params.URI)
	if !service.IsValid() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	files, err := s.ports.Integrations.ListFiles(ctx, service)
	if err != nil {
		return nil, fmt.Errorf("listing %s files: %w", service, err)
	}

	type fileInfo struct {
		Name string `json:"name"`
		Path string `json:"path"`
		URL  string `json:"url,omitempty"`
	}

	infos := make([]fileInfo, len(files))
	for i, f := range files {
		infos[i] = fileInfo{Name: f.Name, Path: f.Path, URL: f.URL}
	}
	return jsonResult(req.Params.URI, infos)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractService extracts the service from a URI like sift://integrations/{service}/files.
func extractService(uri string) domain.Integration {
	const prefix = uriScheme + "integrations/"
	const suffix = "/files"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return domain.Integration(strings.TrimSuffix(uri, suffix))
}
