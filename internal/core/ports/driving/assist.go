package driving

import "context"

// AssistService provides LLM backed helpers. Every method returns an
// empty string when no LLM is configured or the call fails.
type AssistService interface {
	// Suggest completes a partially typed query with a single line.
	Suggest(ctx context.Context, text string) string

	// Summarise describes content in one sentence with regard to query.
	Summarise(ctx context.Context, content, query string) string

	// Highlight returns content with the parts relevant to query upper-cased.
	Highlight(ctx context.Context, content, query string) string

	// Available reports whether an LLM is configured.
	Available() bool
}
