package mcp

import (
	"github.com/custodia-labs/sift/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces used by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs queries against the search service.
	Search driving.SearchService

	// Preview extracts text from PDFs for summaries. Optional.
	Preview driving.PreviewService

	// Assist writes summaries. Optional; summarise fails without it.
	Assist driving.AssistService

	// History backs the history resource. Optional.
	History driving.HistoryService

	// Integrations backs the integrations resources. Optional.
	Integrations driving.IntegrationService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
