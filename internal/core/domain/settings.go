package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGroq is Groq's OpenAI-compatible API.
	AIProviderGroq AIProvider = "groq"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGroq:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGroq
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGroq:
		return "Groq (cloud)"
	default:
		return unknownDescription
	}
}

// EmptyQueryPolicy decides what an empty query does to the result list.
type EmptyQueryPolicy string

// Empty query policies.
const (
	// EmptyQueryClear empties the list.
	EmptyQueryClear EmptyQueryPolicy = "clear"

	// EmptyQueryKeep leaves the previous list in place.
	EmptyQueryKeep EmptyQueryPolicy = "keep"
)

// IsValid returns true if the policy is recognised.
func (p EmptyQueryPolicy) IsValid() bool {
	return p == EmptyQueryClear || p == EmptyQueryKeep
}

// SelectionPolicy decides where focus lands when the result list is replaced.
type SelectionPolicy string

// Selection policies.
const (
	// SelectionReset always focuses the first result.
	SelectionReset SelectionPolicy = "reset"

	// SelectionPreserve keeps the focused result when it is still present.
	SelectionPreserve SelectionPolicy = "preserve"
)

// IsValid returns true if the policy is recognised.
func (p SelectionPolicy) IsValid() bool {
	return p == SelectionReset || p == SelectionPreserve
}

// SearchSettings holds search client configuration.
type SearchSettings struct {
	// BaseURL is the root of the vector-search service.
	BaseURL string

	// Limit caps the number of results requested per query. It never
	// exceeds MaxSearchLimit.
	Limit int

	// Debounce is the quiet period after the last keystroke before a query fires.
	Debounce time.Duration

	// Timeout bounds search and summary calls.
	Timeout time.Duration

	// EmptyQuery is what an empty query does to the list.
	EmptyQuery EmptyQueryPolicy

	// CacheSize is the number of responses kept in memory. Zero disables caching.
	CacheSize int

	// CacheTTL is how long a cached response is served before the service
	// is asked again.
	CacheTTL time.Duration
}

// SelectionSettings holds selection behaviour configuration.
type SelectionSettings struct {
	Policy SelectionPolicy
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama and Groq overrides).
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// BridgeSettings holds native bridge configuration.
type BridgeSettings struct {
	// CallbackPort is the first port tried for the OAuth callback server.
	CallbackPort int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Search    SearchSettings
	Selection SelectionSettings
	LLM       LLMSettings
	Bridge    BridgeSettings
}

// Defaults for the search client.
const (
	DefaultSearchBaseURL = "http://localhost:35443"
	DefaultSearchLimit   = 20
	MaxSearchLimit       = 20
	DefaultDebounce      = 300 * time.Millisecond
	DefaultTimeout       = 10 * time.Second
	DefaultCacheSize     = 64
	DefaultCacheTTL      = 2 * time.Minute
	DefaultCallbackPort  = 35435
)

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; AI features stay off until a provider is set.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			BaseURL:    DefaultSearchBaseURL,
			Limit:      DefaultSearchLimit,
			Debounce:   DefaultDebounce,
			Timeout:    DefaultTimeout,
			EmptyQuery: EmptyQueryClear,
			CacheSize:  DefaultCacheSize,
			CacheTTL:   DefaultCacheTTL,
		},
		Selection: SelectionSettings{Policy: SelectionReset},
		LLM:       LLMSettings{},
		Bridge:    BridgeSettings{CallbackPort: DefaultCallbackPort},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderGroq,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-haiku-latest",
		AIProviderGroq:      "llama3-8b-8192",
	}
}
