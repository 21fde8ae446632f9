package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
	"github.com/custodia-labs/sift/internal/core/ports/driving"
	"github.com/custodia-labs/sift/internal/logger"
)

// Ensure IntegrationService implements the interface.
var _ driving.IntegrationService = (*IntegrationService)(nil)

// IntegrationService keeps one credential per integration.
// Successful tokens are persisted to the config store when one is set.
type IntegrationService struct {
	bridge driven.NativeBridge
	config driven.ConfigStore

	mu          sync.RWMutex
	credentials map[domain.Integration]domain.IntegrationCredential
}

// NewIntegrationService creates the service and loads persisted tokens.
// config may be nil.
func NewIntegrationService(bridge driven.NativeBridge, config driven.ConfigStore) *IntegrationService {
	s := &IntegrationService{
		bridge:      bridge,
		config:      config,
		credentials: make(map[domain.Integration]domain.IntegrationCredential),
	}
	if config != nil {
		for _, svc := range domain.AllIntegrations() {
			if tok := config.GetString(tokenKey(svc)); tok != "" {
				s.credentials[svc] = domain.IntegrationCredential{Service: svc, Token: tok}
			}
		}
	}
	return s
}

// StartOAuth signs in to service and stores the outcome. On failure the
// error text replaces the token.
func (s *IntegrationService) StartOAuth(ctx context.Context, service domain.Integration) domain.IntegrationCredential {
	cred := domain.IntegrationCredential{Service: service}

	token, err := s.authorise(ctx, service)
	if err != nil {
		logger.Warn("oauth %s: %v", service, err)
		cred.Err = err.Error()
	} else {
		cred.Token = token
		s.persist(service, token)
	}

	s.mu.Lock()
	s.credentials[service] = cred
	s.mu.Unlock()
	return cred
}

func (s *IntegrationService) authorise(ctx context.Context, service domain.Integration) (string, error) {
	if !service.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedIntegration, service)
	}
	if s.bridge == nil {
		return "", fmt.Errorf("%w: bridge not available", domain.ErrAuthFailure)
	}
	token, err := s.bridge.StartOAuth(ctx, service)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf("%w: empty token", domain.ErrAuthFailure)
	}
	return token, nil
}

func (s *IntegrationService) persist(service domain.Integration, token string) {
	if s.config == nil {
		return
	}
	if err := s.config.Set(tokenKey(service), token); err != nil {
		logger.Warn("persist %s token: %v", service, err)
	}
}

// Credential returns the stored credential for service.
func (s *IntegrationService) Credential(service domain.Integration) (domain.IntegrationCredential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.credentials[service]
	return c, ok
}

// Credentials returns a credential for every integration in display order.
// Integrations never signed in to are reported with an empty credential.
func (s *IntegrationService) Credentials() []domain.IntegrationCredential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.IntegrationCredential, 0, len(domain.AllIntegrations()))
	for _, svc := range domain.AllIntegrations() {
		c, ok := s.credentials[svc]
		if !ok {
			c = domain.IntegrationCredential{Service: svc}
		}
		out = append(out, c)
	}
	return out
}

// ListFiles lists files on an authenticated integration.
func (s *IntegrationService) ListFiles(ctx context.Context, service domain.Integration) ([]domain.RemoteFile, error) {
	cred, ok := s.Credential(service)
	if !ok || !cred.Authenticated() {
		return nil, fmt.Errorf("%s: %w", service, domain.ErrNotAuthenticated)
	}
	if s.bridge == nil {
		return nil, errors.New("bridge not available")
	}
	return s.bridge.ListFiles(ctx, service, cred.Token)
}

// Quit asks the host to shut the application down.
func (s *IntegrationService) Quit() {
	if s.bridge != nil {
		s.bridge.Exit()
	}
}

func tokenKey(service domain.Integration) string {
	return "integrations." + string(service) + ".token"
}
