package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sift/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sift/internal/core/domain"
)

func TestIntegrationService_StartOAuth_Success(t *testing.T) {
	config := memory.NewConfigStore()
	bridge := &mockBridge{
		StartOAuthFunc: func(_ context.Context, svc domain.Integration) (string, error) {
			return "tok-" + string(svc), nil
		},
	}
	s := NewIntegrationService(bridge, config)

	cred := s.StartOAuth(context.Background(), domain.IntegrationGitHub)

	assert.True(t, cred.Authenticated())
	assert.Equal(t, "tok-github", cred.Token)
	assert.Equal(t, "tok-github", config.GetString("integrations.github.token"))
}

func TestIntegrationService_StartOAuth_ErrorStoredInPlaceOfToken(t *testing.T) {
	bridge := &mockBridge{
		StartOAuthFunc: func(context.Context, domain.Integration) (string, error) {
			return "", errors.New("access_denied")
		},
	}
	s := NewIntegrationService(bridge, nil)

	cred := s.StartOAuth(context.Background(), domain.IntegrationSlack)

	assert.False(t, cred.Authenticated())
	assert.Empty(t, cred.Token)
	assert.Equal(t, "access_denied", cred.Err)

	stored, ok := s.Credential(domain.IntegrationSlack)
	require.True(t, ok)
	assert.Equal(t, cred, stored)
}

func TestIntegrationService_StartOAuth_EmptyToken(t *testing.T) {
	s := NewIntegrationService(&mockBridge{}, nil)

	cred := s.StartOAuth(context.Background(), domain.IntegrationNotion)

	assert.Contains(t, cred.Err, domain.ErrAuthFailure.Error())
}

func TestIntegrationService_StartOAuth_UnknownService(t *testing.T) {
	s := NewIntegrationService(&mockBridge{}, nil)

	cred := s.StartOAuth(context.Background(), domain.Integration("dropbox"))

	assert.Contains(t, cred.Err, "unsupported integration")
}

func TestIntegrationService_LoadsPersistedTokens(t *testing.T) {
	config := memory.NewConfigStore()
	_ = config.Set("integrations.notion.token", "secret")

	s := NewIntegrationService(&mockBridge{}, config)

	cred, ok := s.Credential(domain.IntegrationNotion)
	require.True(t, ok)
	assert.True(t, cred.Authenticated())
}

func TestIntegrationService_Credentials_DisplayOrder(t *testing.T) {
	s := NewIntegrationService(&mockBridge{}, nil)

	creds := s.Credentials()

	require.Len(t, creds, 5)
	assert.Equal(t, domain.IntegrationGitHub, creds[0].Service)
	assert.Equal(t, domain.IntegrationGoogle, creds[4].Service)
	assert.False(t, creds[0].Authenticated())
}

func TestIntegrationService_ListFiles(t *testing.T) {
	bridge := &mockBridge{
		StartOAuthFunc: func(context.Context, domain.Integration) (string, error) { return "t", nil },
		ListFilesFunc: func(_ context.Context, svc domain.Integration, token string) ([]domain.RemoteFile, error) {
			assert.Equal(t, "t", token)
			return []domain.RemoteFile{{Name: "a", Service: svc}}, nil
		},
	}
	s := NewIntegrationService(bridge, nil)

	_, err := s.ListFiles(context.Background(), domain.IntegrationGoogle)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	s.StartOAuth(context.Background(), domain.IntegrationGoogle)
	files, err := s.ListFiles(context.Background(), domain.IntegrationGoogle)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestIntegrationService_Quit(t *testing.T) {
	bridge := &mockBridge{}
	service := NewIntegrationService(bridge, nil)

	service.Quit()

	assert.Equal(t, 1, bridge.exits)
	assert.NotPanics(t, func() { NewIntegrationService(nil, nil).Quit() })
}
