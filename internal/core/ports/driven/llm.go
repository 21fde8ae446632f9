package driven

import (
	"context"

	"github.com/custodia-labs/sift/internal/core/domain"
)

// LLMService answers chat requests for query suggestions, file summaries
// and phrase highlighting. A nil LLMService turns those features off.
type LLMService interface {
	// Chat returns the model's reply to messages. System messages may
	// appear anywhere; adapters move them where their API expects them.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the model replies come from.
	ModelName() string

	// Ping checks the endpoint and credentials without running inference.
	Ping(ctx context.Context) error

	Close() error
}

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatOptions bounds a reply. Zero values leave the provider default.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}

// LLMConfigValidator checks that LLM settings reach a working provider.
type LLMConfigValidator interface {
	ValidateLLM(config *domain.LLMSettings) error
}
