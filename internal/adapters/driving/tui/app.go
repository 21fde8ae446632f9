package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sift/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/router"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/sift/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	keys *keymap.KeyMap

	// router owns keyboard focus; every key goes through it.
	router *router.Router

	searchView   *search.View
	settingsView *settings.View

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	searchView := search.NewView(s, km, search.Services{
		Results:   ports.Results,
		Selection: ports.Selection,
		Actions:   ports.Actions,
		Preview:   ports.Preview,
		Assist:    ports.Assist,
		History:   ports.History,
	})
	settingsView := settings.NewView(s, ports.Integrations, ports.Settings)

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keys:         km,
		router:       router.New(km),
		searchView:   searchView,
		settingsView: settingsView,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.settingsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("Sift"),
		a.searchView.Init(),
		a.settingsView.Init(),
		a.waitForExit(),
		a.waitForNotice(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.MouseMsg:
		if a.router.Region() == router.RegionSettings {
			return a, nil
		}
		return a, a.searchView.HandleMouse(msg)

	case messages.ExitRequested:
		return a, tea.Quit

	case messages.Notice:
		a.searchView.SetNotice(msg.Text)
		return a, a.waitForNotice()

	case messages.SettingsLoaded, messages.OAuthCompleted, messages.FilesListed:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	}

	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// handleKey routes msg and hands it to the region the router picked.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	before := a.router.Region()
	route := a.router.Route(msg)

	if route.Intent == router.IntentQuit {
		return a.quit()
	}

	var cmd tea.Cmd
	if route.Region == router.RegionSettings {
		cmd = a.settingsView.HandleKey(route, msg)
	} else {
		cmd = a.searchView.HandleKey(route, msg)
	}

	// Running an action or opening with nothing selected closes the
	// palette from inside the view.
	if a.router.Region() == router.RegionPalette && !a.searchView.PaletteOpen() {
		a.router.ClosePalette()
	}

	if a.router.Region() == before {
		return cmd
	}
	return tea.Batch(cmd, a.searchView.SetFocus(a.router.Region()))
}

// quit asks the host to shut down and stops the program.
func (a *App) quit() tea.Cmd {
	if a.ports.Integrations != nil {
		a.ports.Integrations.Quit()
	}
	return tea.Quit
}

// waitForExit turns the host's exit signal into a message.
func (a *App) waitForExit() tea.Cmd {
	done := a.ports.Exit
	if done == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case <-done:
			return messages.ExitRequested{}
		case <-ctx.Done():
			return messages.ExitRequested{}
		}
	}
}

// waitForNotice delivers the next host notice. It is re-armed after each one.
func (a *App) waitForNotice() tea.Cmd {
	notices := a.ports.Notices
	if notices == nil {
		return nil
	}
	return func() tea.Msg {
		text, ok := <-notices
		if !ok {
			return nil
		}
		return messages.Notice{Text: text}
	}
}

// View implements tea.Model.
// It renders the focused screen as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.router.Region() == router.RegionSettings {
		return a.settingsView.View()
	}
	return a.searchView.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Region returns the focused region.
func (a *App) Region() router.Region {
	return a.router.Region()
}

// Mode returns the keyboard mode.
func (a *App) Mode() router.Mode {
	return a.router.Mode()
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// SelectedIndex returns the focused result index, or -1.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
