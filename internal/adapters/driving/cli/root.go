// Package cli provides the cobra command tree for the sift binary.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sift/internal/core/ports/driving"
	"github.com/custodia-labs/sift/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services are the core services behind the commands. Only the ones a
// command uses need to be set.
type Services struct {
	Results      driving.ResultStore
	Search       driving.SearchService
	Selection    driving.SelectionController
	Actions      driving.ActionService
	Preview      driving.PreviewService
	Assist       driving.AssistService
	History      driving.HistoryService
	Integrations driving.IntegrationService
	Settings     driving.SettingsService

	// Exit is closed when the host shuts the application down.
	Exit <-chan struct{}

	// Notices carries config reload messages to the TUI.
	Notices <-chan string

	// LogPath receives log output while the TUI owns the terminal.
	LogPath string
}

// Bootstrap builds the services for the given config directory. An
// empty dir means the default location. The returned func releases
// whatever the services hold open.
type Bootstrap func(ctx context.Context, dir string) (*Services, func(), error)

// Service instances set by the composition root.
var (
	resultStore         driving.ResultStore
	searchService       driving.SearchService
	selectionController driving.SelectionController
	actionService       driving.ActionService
	previewService      driving.PreviewService
	assistService       driving.AssistService
	historyService      driving.HistoryService
	integrationService  driving.IntegrationService
	settingsService     driving.SettingsService

	exitSignal <-chan struct{}
	notices    <-chan string
	logPath    string

	bootstrap Bootstrap
	release   func()
)

// skipServices marks commands that run without building services.
const skipServices = "skip-services"

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Search your files from the terminal",
	Long: `Sift is a keyboard driven search client for a local vector search service.

Run without a subcommand to open the interactive terminal UI.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sift)")
}

// SetServices installs the services used by every command.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	resultStore = s.Results
	searchService = s.Search
	selectionController = s.Selection
	actionService = s.Actions
	previewService = s.Preview
	assistService = s.Assist
	historyService = s.History
	integrationService = s.Integrations
	settingsService = s.Settings
	exitSignal = s.Exit
	notices = s.Notices
	logPath = s.LogPath
}

// SetBootstrap registers the function that builds services once flags
// are parsed.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[skipServices] == "true" {
		return nil
	}

	svc, cleanup, err := bootstrap(cmd.Context(), configDir)
	if err != nil {
		return fmt.Errorf("starting sift: %w", err)
	}
	SetServices(svc)
	release = cleanup
	logger.Debug("services ready (config dir %q)", configDir)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if release != nil {
		release()
		release = nil
	}
	return nil
}

// errNotConfigured reports a service the composition root did not supply.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
