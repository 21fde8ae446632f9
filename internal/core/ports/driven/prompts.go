package driven

// PromptStore supplies the system prompt for each LLM feature. Load
// returns domain.ErrNotFound for names other than the constants below.
type PromptStore interface {
	Load(name string) (string, error)

	// Reload forgets cached prompts after the user edits them.
	Reload()
}

// Prompt names. The user message always carries the query and, for
// summaries and highlighting, the file content.
const (
	PromptSuggest   = "suggest"   // completes a partly typed query
	PromptSummarise = "summarise" // one sentence about a file
	PromptHighlight = "highlight" // relevant phrases, one per line
)
