package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/sift/internal/adapters/driven/llm/httpjson"
	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
)

var _ driven.LLMConfigValidator = (*ConfigValidator)(nil)

const defaultPingTimeout = 5 * time.Second

// ConfigValidator pings the provider named by LLM settings.
type ConfigValidator struct {
	timeout time.Duration
}

// NewConfigValidator returns a validator that waits up to five seconds
// for the provider.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{timeout: defaultPingTimeout}
}

// ValidateLLM passes unconfigured settings, since AI features are then
// simply off. Rejected keys get a hint pointing at `sift config set-key`.
func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	svc, err := CreateLLMService(config)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()

	err = svc.Ping(ctx)
	switch {
	case err == nil:
		return nil
	case httpjson.IsUnauthorized(err):
		return fmt.Errorf("%w: API key rejected (%w); run 'sift config set-key'", domain.ErrLLMUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
}
