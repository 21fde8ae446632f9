// Package settings provides the integrations and settings menu for the TUI.
package settings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sift/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/router"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driving"
)

// maxListedFiles bounds how many listed files are rendered per service.
const maxListedFiles = 8

// View lists the integrations with their sign-in state and shows the
// language model configuration.
type View struct {
	styles       *styles.Styles
	integrations driving.IntegrationService
	settings     driving.SettingsService
	ctx          context.Context

	creds    []domain.IntegrationCredential
	cursor   domain.Cursor
	app      *domain.AppSettings
	err      error
	busy     domain.Integration
	message  string
	files    map[domain.Integration][]domain.RemoteFile
	filesErr map[domain.Integration]error

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view. Either service may be nil.
func NewView(s *styles.Styles, integrations driving.IntegrationService, settings driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:       s,
		integrations: integrations,
		settings:     settings,
		ctx:          context.Background(),
		files:        make(map[domain.Integration][]domain.RemoteFile),
		filesErr:     make(map[domain.Integration]error),
	}
	v.refreshCredentials()
	return v
}

// WithContext sets the context for sign-in and listing.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settings
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// refreshCredentials reloads the credential list, keeping the cursor.
func (v *View) refreshCredentials() {
	if v.integrations == nil {
		v.creds = nil
		v.cursor.Reset(0)
		return
	}
	index := v.cursor.Index()
	v.creds = v.integrations.Credentials()
	v.cursor.Reset(len(v.creds))
	v.cursor.SelectAt(index)
}

// Update handles non-key messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.SettingsLoaded:
		v.app, v.err = msg.Settings, msg.Err

	case messages.OAuthCompleted:
		if v.busy == msg.Credential.Service {
			v.busy = ""
		}
		v.refreshCredentials()
		name := msg.Credential.Service.Description()
		if msg.Credential.Authenticated() {
			v.message = "Connected to " + name
			return v, v.listFiles(msg.Credential.Service)
		}
		v.message = name + ": " + msg.Credential.Err

	case messages.FilesListed:
		if v.busy == msg.Service {
			v.busy = ""
		}
		if msg.Err != nil {
			v.filesErr[msg.Service] = msg.Err
			delete(v.files, msg.Service)
			return v, nil
		}
		delete(v.filesErr, msg.Service)
		v.files[msg.Service] = msg.Files
		v.message = fmt.Sprintf("%s: %d files", msg.Service.Description(), len(msg.Files))
	}
	return v, nil
}

// HandleKey applies a key routed to the settings region.
func (v *View) HandleKey(route router.Route, msg tea.KeyMsg) tea.Cmd {
	switch route.Intent {
	case router.IntentOpenSettings:
		v.refreshCredentials()
		v.message = ""
		return v.loadSettings()
	case router.IntentUp:
		v.cursor.MoveUp()
	case router.IntentDown:
		v.cursor.MoveDown()
	case router.IntentConfirm:
		cred, ok := v.Highlighted()
		if !ok {
			return nil
		}
		if cred.Authenticated() {
			return v.listFiles(cred.Service)
		}
		return v.signIn(cred.Service)
	case router.IntentNone:
		cred, ok := v.Highlighted()
		if !ok {
			return nil
		}
		switch msg.String() {
		case "l":
			return v.listFiles(cred.Service)
		case "r":
			return v.signIn(cred.Service)
		}
	}
	return nil
}

// Highlighted returns the credential under the cursor.
func (v *View) Highlighted() (domain.IntegrationCredential, bool) {
	i := v.cursor.Index()
	if i < 0 || i >= len(v.creds) {
		return domain.IntegrationCredential{}, false
	}
	return v.creds[i], true
}

func (v *View) signIn(service domain.Integration) tea.Cmd {
	if v.integrations == nil || v.busy != "" {
		return nil
	}
	v.busy = service
	v.message = "Signing in to " + service.Description() + "... complete the flow in your browser"

	svc, ctx := v.integrations, v.ctx
	return func() tea.Msg {
		return messages.OAuthCompleted{Credential: svc.StartOAuth(ctx, service)}
	}
}

func (v *View) listFiles(service domain.Integration) tea.Cmd {
	if v.integrations == nil || v.busy != "" {
		return nil
	}
	v.busy = service
	v.message = "Listing " + service.Description() + " files..."

	svc, ctx := v.integrations, v.ctx
	return func() tea.Msg {
		files, err := svc.ListFiles(ctx, service)
		return messages.FilesListed{Service: service, Files: files, Err: err}
	}
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Integrations"))
	b.WriteString("\n\n")

	if len(v.creds) == 0 {
		b.WriteString(v.styles.Muted.Render("Integrations not available"))
		b.WriteString("\n")
	}
	for i, cred := range v.creds {
		b.WriteString(v.renderCredential(i, cred))
		b.WriteString("\n")
		b.WriteString(v.renderFiles(cred.Service))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Title.Render("Language model"))
	b.WriteString("\n\n")
	b.WriteString(v.renderLLM())
	b.WriteString("\n\n")

	if v.message != "" {
		b.WriteString(v.styles.Normal.Render(v.message))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("↑/↓: select • enter: sign in or list files • r: sign in again • l: list files • esc: back"))

	return b.String()
}

func (v *View) renderCredential(i int, cred domain.IntegrationCredential) string {
	name := fmt.Sprintf("%-14s", cred.Service.Description())

	var state string
	switch {
	case v.busy == cred.Service:
		state = v.styles.Warning.Render("working...")
	case cred.Authenticated():
		state = v.styles.Success.Render(cred.Status())
	case cred.Err != "":
		state = v.styles.Error.Render(cred.Status())
	default:
		state = v.styles.Muted.Render(cred.Status())
	}

	if i == v.cursor.Index() {
		return v.styles.Selected.Render("> "+name) + " " + state
	}
	return v.styles.Normal.Render("  "+name) + " " + state
}

func (v *View) renderFiles(service domain.Integration) string {
	if err, ok := v.filesErr[service]; ok {
		return v.styles.Error.Render("    "+err.Error()) + "\n"
	}
	files, ok := v.files[service]
	if !ok {
		return ""
	}
	if len(files) == 0 {
		return v.styles.Muted.Render("    no files") + "\n"
	}

	var b strings.Builder
	for i, f := range files {
		if i == maxListedFiles {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("    ... and %d more", len(files)-maxListedFiles)))
			b.WriteString("\n")
			break
		}
		b.WriteString(v.styles.Muted.Render("    " + f.Path))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderLLM() string {
	if v.err != nil {
		return v.styles.Error.Render("Error: " + v.err.Error())
	}
	if v.app == nil {
		return v.styles.Muted.Render("Loading...")
	}
	llm := v.app.LLM
	if !llm.IsConfigured() {
		return v.styles.Muted.Render("Not configured. AI assistance is off.\n" +
			"Run: sift config llm <provider> [model]")
	}
	return fmt.Sprintf("%s  %s", llm.Provider.Description(), v.styles.Muted.Render(llm.Model))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Busy returns the integration with a sign-in or listing in flight.
func (v *View) Busy() domain.Integration {
	return v.busy
}

// Message returns the last status message.
func (v *View) Message() string {
	return v.message
}

// Files returns the files last listed for service.
func (v *View) Files(service domain.Integration) []domain.RemoteFile {
	return v.files[service]
}

// Ready returns whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}
