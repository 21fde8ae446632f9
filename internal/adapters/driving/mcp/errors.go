// Package mcp provides an MCP (Model Context Protocol) server adapter for sift.
// It lets AI assistants run sift searches and summarise matched files.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrAssistUnavailable is returned by summarise when no language model is configured.
var ErrAssistUnavailable = errors.New("mcp: summaries need a configured language model")
