package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sift/internal/core/domain"
)

func budgetResults() []domain.SearchResult {
	return []domain.SearchResult{
		{ID: "1", FilePath: "/docs/budget.txt", Document: "budget notes", Location: "local", Distance: 0.12},
		{ID: "2", FilePath: "/docs/budget report.pdf", Document: "Budget report", Location: "local", Distance: 0.3},
		{ID: "3", FilePath: "/img/chart.png", Document: "iVBORw0KGgo=", Location: "local", Distance: 0.5},
	}
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{results: budgetResults()}})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "budget", Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, 3, output.Count)
		first := output.Results[0]
		assert.Equal(t, "1", first.ID)
		assert.Equal(t, "budget.txt", first.Name)
		assert.Equal(t, "/docs/budget.txt", first.FilePath)
		assert.Equal(t, "local", first.Location)
		assert.Equal(t, "text", first.FileType)
		assert.InDelta(t, 0.12, first.Distance, 1e-9)
		assert.Equal(t, "budget notes", first.Content)
		assert.Empty(t, output.Results[2].Content, "image payloads are not returned")
	})

	t.Run("limit defaults and is capped", func(t *testing.T) {
		search := &mockSearchService{}
		server, err := NewServer(&Ports{Search: search})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "x"})
		require.NoError(t, err)
		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "x", Limit: 500})
		require.NoError(t, err)

		assert.Equal(t, []int{domain.DefaultSearchLimit, domain.DefaultSearchLimit}, search.limits)
	})

	t.Run("long content is truncated", func(t *testing.T) {
		long := strings.Repeat("a", maxContentChars+10)
		search := &mockSearchService{results: []domain.SearchResult{{ID: "1", FilePath: "/a.txt", Document: long}}}
		server, err := NewServer(&Ports{Search: search})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "a"})

		require.NoError(t, err)
		assert.Len(t, output.Results[0].Content, maxContentChars+3)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: domain.ErrNetworkFailure}})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	})
}

func TestServer_handleSummarise(t *testing.T) {
	ctx := context.Background()

	t.Run("summarises matched text file", func(t *testing.T) {
		assist := &mockAssistService{available: true, summary: "Notes on the budget."}
		server, err := NewServer(&Ports{Search: &mockSearchService{results: budgetResults()}, Assist: assist})
		require.NoError(t, err)

		_, output, err := server.handleSummarise(ctx, nil, SummariseInput{FilePath: "/docs/budget.txt", Query: "budget"})

		require.NoError(t, err)
		assert.Equal(t, "/docs/budget.txt", output.FilePath)
		assert.Equal(t, "Notes on the budget.", output.Summary)
		assert.Equal(t, "budget notes", assist.content)
	})

	t.Run("uses extracted pdf text", func(t *testing.T) {
		assist := &mockAssistService{available: true, summary: "A report."}
		preview := &mockPreviewService{preview: domain.Preview{Kind: domain.FileTypePDF, Text: "full report text"}}
		server, err := NewServer(&Ports{
			Search:  &mockSearchService{results: budgetResults()},
			Assist:  assist,
			Preview: preview,
		})
		require.NoError(t, err)

		_, _, err = server.handleSummarise(ctx, nil, SummariseInput{FilePath: "/docs/budget report.pdf", Query: "budget"})

		require.NoError(t, err)
		assert.Equal(t, "full report text", assist.content)
	})

	t.Run("falls back to document when extraction fails", func(t *testing.T) {
		assist := &mockAssistService{available: true, summary: "A report."}
		preview := &mockPreviewService{preview: domain.Preview{Err: errors.New("pdftotext missing")}}
		server, err := NewServer(&Ports{
			Search:  &mockSearchService{results: budgetResults()},
			Assist:  assist,
			Preview: preview,
		})
		require.NoError(t, err)

		_, _, err = server.handleSummarise(ctx, nil, SummariseInput{FilePath: "/docs/budget report.pdf", Query: "budget"})

		require.NoError(t, err)
		assert.Equal(t, "Budget report", assist.content)
	})

	t.Run("requires a language model", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{results: budgetResults()}, Assist: &mockAssistService{}})
		require.NoError(t, err)

		_, _, err = server.handleSummarise(ctx, nil, SummariseInput{FilePath: "/docs/budget.txt", Query: "budget"})

		assert.ErrorIs(t, err, ErrAssistUnavailable)
	})

	t.Run("requires filepath and query", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, _, err = server.handleSummarise(ctx, nil, SummariseInput{Query: "budget"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("file not in results", func(t *testing.T) {
		assist := &mockAssistService{available: true, summary: "x"}
		server, err := NewServer(&Ports{Search: &mockSearchService{results: budgetResults()}, Assist: assist})
		require.NoError(t, err)

		_, _, err = server.handleSummarise(ctx, nil, SummariseInput{FilePath: "/elsewhere.txt", Query: "budget"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("images are rejected", func(t *testing.T) {
		assist := &mockAssistService{available: true, summary: "x"}
		server, err := NewServer(&Ports{Search: &mockSearchService{results: budgetResults()}, Assist: assist})
		require.NoError(t, err)

		_, _, err = server.handleSummarise(ctx, nil, SummariseInput{FilePath: "/img/chart.png", Query: "budget"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty summary is an error", func(t *testing.T) {
		assist := &mockAssistService{available: true}
		server, err := NewServer(&Ports{Search: &mockSearchService{results: budgetResults()}, Assist: assist})
		require.NoError(t, err)

		_, _, err = server.handleSummarise(ctx, nil, SummariseInput{FilePath: "/docs/budget.txt", Query: "budget"})

		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})
}
