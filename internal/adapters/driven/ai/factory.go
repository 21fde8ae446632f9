// Package ai builds the LLM adapter that matches the configured provider.
package ai

import (
	"fmt"

	"github.com/custodia-labs/sift/internal/adapters/driven/llm/anthropic"
	"github.com/custodia-labs/sift/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/sift/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
)

type constructor func(s *domain.LLMSettings, model string) (driven.LLMService, error)

var providers = map[domain.AIProvider]constructor{
	domain.AIProviderOllama: func(s *domain.LLMSettings, model string) (driven.LLMService, error) {
		return ollama.NewLLMService(ollama.LLMConfig{BaseURL: s.BaseURL, Model: model}), nil
	},
	domain.AIProviderOpenAI: openAICompatible("openai", openai.DefaultBaseURL),
	domain.AIProviderGroq:   openAICompatible("groq", openai.GroqBaseURL),
	domain.AIProviderAnthropic: func(s *domain.LLMSettings, model string) (driven.LLMService, error) {
		return anthropic.NewLLMService(anthropic.Config{APIKey: s.APIKey, BaseURL: s.BaseURL, Model: model})
	},
}

func openAICompatible(name, defaultURL string) constructor {
	return func(s *domain.LLMSettings, model string) (driven.LLMService, error) {
		url := s.BaseURL
		if url == "" {
			url = defaultURL
		}
		return openai.NewLLMService(openai.LLMConfig{APIKey: s.APIKey, BaseURL: url, Model: model, Name: name})
	}
}

// CreateLLMService returns the adapter for settings.Provider, or nil with
// no error when no provider is configured. A blank model falls back to
// the provider's default.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}
	build, ok := providers[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider %q", domain.ErrLLMUnavailable, settings.Provider)
	}

	model := settings.Model
	if model == "" {
		model = domain.DefaultLLMModels()[settings.Provider]
	}
	svc, err := build(settings, model)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}
