// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driving"
)

// DebounceElapsed fires once the query has been still for the debounce
// interval. It is ignored when Query no longer matches the input.
type DebounceElapsed struct {
	Query string
}

// SearchCompleted carries a search response back to the model.
type SearchCompleted struct {
	Response driving.SearchResponse
}

// PreviewLoaded carries the preview built for the selection Token.
type PreviewLoaded struct {
	Token   driving.SelectionToken
	Preview domain.Preview
}

// SummaryLoaded carries the one-sentence summary for the selection Token.
type SummaryLoaded struct {
	Token   driving.SelectionToken
	Summary string
}

// HighlightLoaded carries preview text with the relevant phrases marked.
type HighlightLoaded struct {
	Token driving.SelectionToken
	Text  string
}

// SuggestionLoaded carries a query completion for Query.
type SuggestionLoaded struct {
	Query      string
	Suggestion string
}

// ActionExecuted reports the outcome of a palette command.
type ActionExecuted struct {
	Action domain.ActionDescriptor
	Err    error
}

// HistoryRecorded reports that a submitted query was stored.
type HistoryRecorded struct {
	Query string
	Err   error
}

// OAuthCompleted carries the credential produced by a sign-in attempt.
type OAuthCompleted struct {
	Credential domain.IntegrationCredential
}

// FilesListed carries the files listed from an integration.
type FilesListed struct {
	Service domain.Integration
	Files   []domain.RemoteFile
	Err     error
}

// Notice is a status line pushed by the host, such as a config reload.
type Notice struct {
	Text string
}

// ExitRequested signals that the host asked the application to exit.
type ExitRequested struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}
