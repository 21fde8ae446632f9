package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/custodia-labs/sift/internal/adapters/driving/oauth"
	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/logger"
)

// provider describes one service's authorization code flow.
type provider struct {
	endpoint     oauth2.Endpoint
	scopes       []string
	params       []oauth2.AuthCodeOption
	idEnv        string
	secretEnv    string
	callbackPath string
	portOffset   int
}

// defaultProviders returns the flows for every supported integration.
// Slack and GitHub take comma separated scopes in a single parameter.
func defaultProviders() map[domain.Integration]provider {
	return map[domain.Integration]provider{
		domain.IntegrationGitHub: {
			endpoint:     endpoints.GitHub,
			scopes:       []string{"repo,user"},
			idEnv:        "GITHUB_CLIENT_ID",
			secretEnv:    "GITHUB_CLIENT_SECRET",
			callbackPath: "/gh_auth_callback",
			portOffset:   0,
		},
		domain.IntegrationSlack: {
			endpoint: oauth2.Endpoint{
				AuthURL:   "https://slack.com/oauth/v2/authorize",
				TokenURL:  "https://slack.com/api/oauth.v2.access",
				AuthStyle: oauth2.AuthStyleInParams,
			},
			scopes:       []string{"app_mentions:read,channels:read,files:read,links:read,remote_files:read"},
			idEnv:        "SLACK_CLIENT_ID",
			secretEnv:    "SLACK_CLIENT_SECRET",
			callbackPath: "/slk_auth_callback",
			portOffset:   4,
		},
		domain.IntegrationDiscord: {
			endpoint: oauth2.Endpoint{
				AuthURL:   "https://discord.com/oauth2/authorize",
				TokenURL:  "https://discord.com/api/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
			scopes:       []string{"identify", "messages.read"},
			idEnv:        "DISCORD_CLIENT_ID",
			secretEnv:    "DISCORD_CLIENT_SECRET",
			callbackPath: "/disc_auth_callback",
			portOffset:   5,
		},
		domain.IntegrationNotion: {
			endpoint: oauth2.Endpoint{
				AuthURL:   "https://api.notion.com/v1/oauth/authorize",
				TokenURL:  "https://api.notion.com/v1/oauth/token",
				AuthStyle: oauth2.AuthStyleInHeader,
			},
			params:       []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("owner", "user")},
			idEnv:        "NOTION_CLIENT_ID",
			secretEnv:    "NOTION_SECRET",
			callbackPath: "/ntn_oauth_callback",
			portOffset:   6,
		},
		domain.IntegrationGoogle: {
			endpoint: endpoints.Google,
			scopes:   []string{"https://www.googleapis.com/auth/drive.metadata.readonly"},
			params: []oauth2.AuthCodeOption{
				oauth2.AccessTypeOffline,
				oauth2.SetAuthURLParam("include_granted_scopes", "true"),
			},
			idEnv:        "GOOGLE_CLIENT_ID",
			secretEnv:    "GOOGLE_SECRET",
			callbackPath: "/ggl_auth_callback",
			portOffset:   7,
		},
	}
}

// StartOAuth runs the authorization code flow for service: it serves the
// redirect locally, opens the consent page in the browser and exchanges the
// returned code for an access token.
func (b *Bridge) StartOAuth(ctx context.Context, service domain.Integration) (string, error) {
	p, ok := b.providers[service]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedIntegration, service)
	}

	clientID, clientSecret := b.clientCredentials(service, p)
	if clientID == "" || clientSecret == "" {
		return "", fmt.Errorf("%w: set %s and %s", domain.ErrMissingClientConfig, p.idEnv, p.secretEnv)
	}

	state, err := oauth.GenerateState()
	if err != nil {
		return "", err
	}

	redirect, err := oauth.Listen(b.basePort+p.portOffset, p.callbackPath, state)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAuthFailure, err)
	}
	defer redirect.Close()

	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     p.endpoint,
		RedirectURL:  redirect.URL(),
		Scopes:       p.scopes,
	}

	verifier := oauth2.GenerateVerifier()
	opts := append([]oauth2.AuthCodeOption{oauth2.S256ChallengeOption(verifier)}, p.params...)
	authURL := cfg.AuthCodeURL(state, opts...)

	logger.Info("bridge: opening %s sign-in", service.Description())
	if err := b.open(authURL); err != nil {
		return "", fmt.Errorf("%w: open browser: %w", domain.ErrAuthFailure, err)
	}

	ctx, cancel := context.WithTimeout(ctx, b.authTimeout)
	defer cancel()

	code, err := redirect.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAuthFailure, err)
	}

	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return "", fmt.Errorf("%w: token exchange: %s", domain.ErrAuthFailure, describeExchangeError(err))
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", domain.ErrAuthFailure)
	}
	return tok.AccessToken, nil
}

// clientCredentials reads the app credentials from the environment, then
// from config keys integrations.<service>.client_id and .client_secret.
func (b *Bridge) clientCredentials(service domain.Integration, p provider) (string, string) {
	id, secret := b.getenv(p.idEnv), b.getenv(p.secretEnv)
	if b.config != nil {
		prefix := "integrations." + service.String() + "."
		if id == "" {
			id = b.config.GetString(prefix + "client_id")
		}
		if secret == "" {
			secret = b.config.GetString(prefix + "client_secret")
		}
	}
	return strings.TrimSpace(id), strings.TrimSpace(secret)
}

// describeExchangeError keeps the provider's error code and drops the raw body.
func describeExchangeError(err error) string {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		if re.ErrorCode != "" {
			return re.ErrorCode
		}
		if re.Response != nil {
			return re.Response.Status
		}
	}
	return err.Error()
}
