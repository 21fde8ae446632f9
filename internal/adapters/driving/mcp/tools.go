package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/logger"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find files"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	FilePath string  `json:"filepath"`
	Location string  `json:"location"`
	FileType string  `json:"filetype"`
	Distance float64 `json:"distance"`
	Content  string  `json:"content,omitempty"`
}

// SummariseInput is the input schema for the summarise tool.
type SummariseInput struct {
	FilePath string `json:"filepath" jsonschema:"path of a file returned by the search tool"`
	Query    string `json:"query" jsonschema:"the query that found the file"`
}

// SummariseOutput is the output schema for the summarise tool.
type SummariseOutput struct {
	FilePath string `json:"filepath"`
	Summary  string `json:"summary"`
}

// maxContentChars bounds the text returned per search result.
const maxContentChars = 2000

// registerTools adds search, and summarise when previews and the
// assistant are wired.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search files by meaning and return the closest matches",
	}, s.handleSearch)

	if s.ports.Preview == nil || s.ports.Assist == nil {
		return
	}
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarise",
		Description: "Summarise in one sentence how a matched file relates to the query",
	}, s.handleSummarise)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > domain.DefaultSearchLimit {
		limit = domain.DefaultSearchLimit
	}

	results, err := s.ports.Search.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		out := SearchResultOutput{
			ID:       r.ID,
			Name:     r.Name(),
			FilePath: r.FilePath,
			Location: r.Location,
			FileType: r.FileType().String(),
			Distance: r.Distance,
		}
		// Image documents are base64 payloads, not text.
		if r.FileType() != domain.FileTypeImage {
			out.Content = truncateRunes(r.Document, maxContentChars)
		}
		output.Results[i] = out
	}

	return nil, output, nil
}

// handleSummarise finds filepath among the results for query and asks the
// language model for a one-sentence summary.
func (s *Server) handleSummarise(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummariseInput,
) (*mcp.CallToolResult, SummariseOutput, error) {
	if input.FilePath == "" || input.Query == "" {
		return nil, SummariseOutput{}, fmt.Errorf("filepath and query: %w", domain.ErrInvalidInput)
	}
	if s.ports.Assist == nil || !s.ports.Assist.Available() {
		return nil, SummariseOutput{}, ErrAssistUnavailable
	}

	results, err := s.ports.Search.Search(ctx, input.Query, domain.DefaultSearchLimit)
	if err != nil {
		return nil, SummariseOutput{}, err
	}

	var (
		item  domain.SearchResult
		found bool
	)
	for _, r := range results {
		if r.FilePath == input.FilePath {
			item, found = r, true
			break
		}
	}
	if !found {
		return nil, SummariseOutput{}, fmt.Errorf("%s in results for %q: %w", input.FilePath, input.Query, domain.ErrNotFound)
	}

	content, err := s.content(ctx, item)
	if err != nil {
		return nil, SummariseOutput{}, err
	}

	summary := s.ports.Assist.Summarise(ctx, content, input.Query)
	if summary == "" {
		return nil, SummariseOutput{}, fmt.Errorf("summarise %s: %w", input.FilePath, domain.ErrLLMUnavailable)
	}
	return nil, SummariseOutput{FilePath: item.FilePath, Summary: summary}, nil
}

// content returns the text to summarise for item.
func (s *Server) content(ctx context.Context, item domain.SearchResult) (string, error) {
	switch item.FileType() {
	case domain.FileTypeImage:
		return "", fmt.Errorf("images cannot be summarised: %w", domain.ErrInvalidInput)
	case domain.FileTypePDF:
		if s.ports.Preview == nil {
			return item.Document, nil
		}
		p := s.ports.Preview.Load(ctx, item)
		if p.Err != nil || p.Text == "" {
			logger.Warn("mcp: pdf text for %s: %v", item.FilePath, p.Err)
			return item.Document, nil
		}
		return p.Text, nil
	default:
		return item.Document, nil
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
