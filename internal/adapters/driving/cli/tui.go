package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sift/internal/adapters/driving/tui"
	"github.com/custodia-labs/sift/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Sift.

Type to search. Results refresh as you type and the preview follows the
highlighted result.

Controls:
  ↑/↓      - Move through results (wraps)
  Enter    - Record the query / open the action palette
  Ctrl+K   - Toggle the action palette
  Esc      - Close the palette / clear the query
  Ctrl+S   - Integrations and settings
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	ports := tuiPorts()
	if err := ports.Validate(); err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	switch {
	case logPath != "":
		restore, err := logger.ToFile(logPath)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer restore()
	case logger.IsVerbose():
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// tuiPorts collects the installed services into TUI ports.
func tuiPorts() *tui.Ports {
	ports := tui.NewPorts(resultStore, selectionController, actionService)
	ports.Preview = previewService
	ports.Assist = assistService
	ports.History = historyService
	ports.Integrations = integrationService
	ports.Settings = settingsService
	ports.Exit = exitSignal
	ports.Notices = notices
	return ports
}
