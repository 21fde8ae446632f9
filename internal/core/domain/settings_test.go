package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	for _, p := range AllLLMProviders() {
		assert.True(t, p.IsValid(), p)
	}
	assert.False(t, AIProvider("").IsValid())
	assert.False(t, AIProvider("mistral").IsValid())
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
	assert.True(t, AIProviderGroq.RequiresAPIKey())
}

func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Groq (cloud)", AIProviderGroq.Description())
	assert.Equal(t, "Unknown", AIProvider("x").Description())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		expected bool
	}{
		{"empty", LLMSettings{}, false},
		{"ollama without key", LLMSettings{Provider: AIProviderOllama}, true},
		{"groq without key", LLMSettings{Provider: AIProviderGroq}, false},
		{"groq with key", LLMSettings{Provider: AIProviderGroq, APIKey: "k"}, true},
		{"unknown provider", LLMSettings{Provider: "x", APIKey: "k"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "http://localhost:35443", s.Search.BaseURL)
	assert.Equal(t, 20, s.Search.Limit)
	assert.Equal(t, 300*time.Millisecond, s.Search.Debounce)
	assert.Equal(t, 10*time.Second, s.Search.Timeout)
	assert.Equal(t, EmptyQueryClear, s.Search.EmptyQuery)
	assert.Equal(t, SelectionReset, s.Selection.Policy)
	assert.False(t, s.LLM.IsConfigured())
	assert.Equal(t, DefaultCallbackPort, s.Bridge.CallbackPort)
}

func TestPolicies_IsValid(t *testing.T) {
	assert.True(t, EmptyQueryKeep.IsValid())
	assert.False(t, EmptyQueryPolicy("drop").IsValid())
	assert.True(t, SelectionPreserve.IsValid())
	assert.False(t, SelectionPolicy("").IsValid())
}

func TestDefaultLLMModels_CoverAllProviders(t *testing.T) {
	models := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, models[p], p)
	}
}
