package domain

import "fmt"

// Integration identifies an external service Sift can sign in to.
type Integration string

// Supported integrations.
const (
	IntegrationGitHub  Integration = "github"
	IntegrationSlack   Integration = "slack"
	IntegrationDiscord Integration = "discord"
	IntegrationNotion  Integration = "notion"
	IntegrationGoogle  Integration = "google"
)

// AllIntegrations returns every integration in display order.
func AllIntegrations() []Integration {
	return []Integration{
		IntegrationGitHub,
		IntegrationSlack,
		IntegrationDiscord,
		IntegrationNotion,
		IntegrationGoogle,
	}
}

// ParseIntegration converts a user supplied name into an Integration.
func ParseIntegration(s string) (Integration, error) {
	i := Integration(s)
	if !i.IsValid() {
		return "", fmt.Errorf("%w: integration %q", ErrInvalidInput, s)
	}
	return i, nil
}

// IsValid returns true if the integration is recognised.
func (i Integration) IsValid() bool {
	switch i {
	case IntegrationGitHub, IntegrationSlack, IntegrationDiscord, IntegrationNotion, IntegrationGoogle:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (i Integration) String() string {
	return string(i)
}

// Description returns a human-readable name.
func (i Integration) Description() string {
	switch i {
	case IntegrationGitHub:
		return "GitHub"
	case IntegrationSlack:
		return "Slack"
	case IntegrationDiscord:
		return "Discord"
	case IntegrationNotion:
		return "Notion"
	case IntegrationGoogle:
		return "Google Drive"
	default:
		return "Unknown"
	}
}

// IntegrationCredential is the outcome of a sign-in attempt.
// On failure Err carries the error text and Token is empty.
// Credentials never expire and are never refreshed.
type IntegrationCredential struct {
	Service Integration
	Token   string
	Err     string
}

// Authenticated reports whether the credential holds a usable token.
func (c IntegrationCredential) Authenticated() bool {
	return c.Token != "" && c.Err == ""
}

// Status returns a short status line for display.
func (c IntegrationCredential) Status() string {
	switch {
	case c.Authenticated():
		return "connected"
	case c.Err != "":
		return "error: " + c.Err
	default:
		return "not connected"
	}
}

// RemoteFile is a file listed from an integration.
type RemoteFile struct {
	ID      string
	Name    string
	Path    string
	URL     string
	Service Integration
}
