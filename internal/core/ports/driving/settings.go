package driving

import "github.com/custodia-labs/sift/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks that the current settings are usable.
	Validate() error

	// ValidateLLMConfig pings the configured LLM provider.
	ValidateLLMConfig() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Value returns the value stored under a dotted key.
	Value(key string) (string, bool)

	// SetValue stores a value under a dotted key.
	SetValue(key, value string) error

	// Keys returns every stored key, sorted.
	Keys() []string

	// Path returns where settings are stored.
	Path() string
}
