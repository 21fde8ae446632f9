package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
	"github.com/custodia-labs/sift/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeySearchBaseURL    = "search.base_url"
	KeySearchLimit      = "search.limit"
	KeySearchDebounceMS = "search.debounce_ms"
	KeySearchTimeoutMS  = "search.timeout_ms"
	KeySearchEmptyQuery = "search.empty_query"
	KeySearchCacheSize  = "search.cache_size"
	KeySearchCacheTTLS  = "search.cache_ttl_s"
	KeySelectionPolicy  = "selection.policy"
	KeyLLMProvider      = "llm.provider"
	KeyLLMModel         = "llm.model"
	KeyLLMBaseURL       = "llm.base_url"
	KeyLLMAPIKey        = "llm.api_key"
	KeyBridgePort       = "bridge.callback_port"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore  driven.ConfigStore
	llmValidator driven.LLMConfigValidator
}

// NewSettingsService creates a new settings service. llmValidator may be nil,
// in which case ValidateLLMConfig accepts any configuration.
func NewSettingsService(configStore driven.ConfigStore, llmValidator driven.LLMConfigValidator) *SettingsService {
	return &SettingsService{
		configStore:  configStore,
		llmValidator: llmValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			BaseURL:    s.getString(KeySearchBaseURL, defaults.Search.BaseURL),
			Limit:      s.getInt(KeySearchLimit, defaults.Search.Limit),
			Debounce:   s.getMillis(KeySearchDebounceMS, defaults.Search.Debounce),
			Timeout:    s.getMillis(KeySearchTimeoutMS, defaults.Search.Timeout),
			EmptyQuery: s.getEmptyQuery(defaults.Search.EmptyQuery),
			CacheSize:  s.getCacheSize(defaults.Search.CacheSize),
			CacheTTL:   s.getSeconds(KeySearchCacheTTLS, defaults.Search.CacheTTL),
		},
		Selection: domain.SelectionSettings{
			Policy: s.getSelectionPolicy(defaults.Selection.Policy),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(KeyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(KeyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(KeyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(KeyLLMAPIKey),
		},
		Bridge: domain.BridgeSettings{
			CallbackPort: s.getInt(KeyBridgePort, defaults.Bridge.CallbackPort),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeySearchBaseURL, settings.Search.BaseURL},
		{KeySearchLimit, settings.Search.Limit},
		{KeySearchDebounceMS, int(settings.Search.Debounce / time.Millisecond)},
		{KeySearchTimeoutMS, int(settings.Search.Timeout / time.Millisecond)},
		{KeySearchEmptyQuery, string(settings.Search.EmptyQuery)},
		{KeySearchCacheSize, settings.Search.CacheSize},
		{KeySearchCacheTTLS, int(settings.Search.CacheTTL / time.Second)},
		{KeySelectionPolicy, string(settings.Selection.Policy)},
		{KeyLLMProvider, settings.LLM.Provider.String()},
		{KeyLLMModel, settings.LLM.Model},
		{KeyLLMBaseURL, settings.LLM.BaseURL},
		{KeyBridgePort, settings.Bridge.CallbackPort},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(KeyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	if provider == domain.AIProviderOllama {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	u, err := url.Parse(settings.Search.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: search.base_url %q", domain.ErrInvalidInput, settings.Search.BaseURL)
	}
	if settings.Search.Limit <= 0 || settings.Search.Limit > domain.MaxSearchLimit {
		return fmt.Errorf("%w: search.limit must be between 1 and %d", domain.ErrInvalidInput, domain.MaxSearchLimit)
	}
	if settings.LLM.Provider != "" && !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: llm provider %q requires an API key", domain.ErrInvalidInput, settings.LLM.Provider)
	}

	return nil
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.llmValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.llmValidator.ValidateLLM(&settings.LLM)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Value returns the value stored under key as a string.
func (s *SettingsService) Value(key string) (string, bool) {
	raw, ok := s.configStore.Get(key)
	if !ok {
		return "", false
	}
	if v := s.configStore.GetString(key); v != "" {
		return v, true
	}
	return fmt.Sprint(raw), true
}

// SetValue stores value under key. Values that parse as integers or
// booleans are stored typed. Unknown keys are rejected.
func (s *SettingsService) SetValue(key, value string) error {
	if !IsSettingKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	var typed any = value
	if n, err := strconv.Atoi(value); err == nil {
		typed = n
	} else if b, err := strconv.ParseBool(value); err == nil {
		typed = b
	}
	return s.configStore.Set(key, typed)
}

// Keys returns every stored key, sorted.
func (s *SettingsService) Keys() []string {
	return s.configStore.Keys()
}

// Path returns where settings are stored.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// IsSettingKey reports whether key is a setting sift reads.
func IsSettingKey(key string) bool {
	switch key {
	case KeySearchBaseURL, KeySearchLimit, KeySearchDebounceMS, KeySearchTimeoutMS,
		KeySearchEmptyQuery, KeySearchCacheSize, KeySearchCacheTTLS, KeySelectionPolicy,
		KeyLLMProvider, KeyLLMModel, KeyLLMBaseURL, KeyLLMAPIKey, KeyBridgePort:
		return true
	}

	// integrations.<service>.{token,client_id,client_secret}
	parts := strings.Split(key, ".")
	if len(parts) != 3 || parts[0] != "integrations" || !domain.Integration(parts[1]).IsValid() {
		return false
	}
	switch parts[2] {
	case "token", "client_id", "client_secret":
		return true
	}
	return false
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Millisecond
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

// getCacheSize allows an explicit zero to disable caching.
func (s *SettingsService) getCacheSize(defaultVal int) int {
	if _, exists := s.configStore.Get(KeySearchCacheSize); !exists {
		return defaultVal
	}
	if v := s.configStore.GetInt(KeySearchCacheSize); v >= 0 {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getEmptyQuery(defaultVal domain.EmptyQueryPolicy) domain.EmptyQueryPolicy {
	p := domain.EmptyQueryPolicy(s.configStore.GetString(KeySearchEmptyQuery))
	if !p.IsValid() {
		return defaultVal
	}
	return p
}

func (s *SettingsService) getSelectionPolicy(defaultVal domain.SelectionPolicy) domain.SelectionPolicy {
	p := domain.SelectionPolicy(s.configStore.GetString(KeySelectionPolicy))
	if !p.IsValid() {
		return defaultVal
	}
	return p
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
