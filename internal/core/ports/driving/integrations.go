package driving

import (
	"context"

	"github.com/custodia-labs/sift/internal/core/domain"
)

// IntegrationService manages sign-in to external services.
type IntegrationService interface {
	// StartOAuth signs in to service. A failure is recorded in the
	// returned credential rather than returned as an error.
	StartOAuth(ctx context.Context, service domain.Integration) domain.IntegrationCredential

	// Credential returns the stored credential for service.
	Credential(service domain.Integration) (domain.IntegrationCredential, bool)

	// Credentials returns every stored credential in display order.
	Credentials() []domain.IntegrationCredential

	// ListFiles lists files on an authenticated integration.
	ListFiles(ctx context.Context, service domain.Integration) ([]domain.RemoteFile, error)

	// Quit asks the host to shut the application down.
	Quit()
}
