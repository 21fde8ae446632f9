// Package tui is Sift's full-screen interface: a query box, the result
// list with its preview pane, the ctrl+K action palette and the
// integrations screen, all driven by one key router.
package tui

import (
	"errors"

	"github.com/custodia-labs/sift/internal/core/ports/driving"
)

// Validate errors. A Ports missing several services reports each.
var (
	ErrInvalidPorts         = errors.New("tui: no ports")
	ErrMissingResultStore   = errors.New("tui: result store is required")
	ErrMissingSelection     = errors.New("tui: selection controller is required")
	ErrMissingActionService = errors.New("tui: action service is required")
)

// Ports are the services the TUI drives. Results, Selection and Actions
// are required; every other field switches a feature on when set.
type Ports struct {
	// Results holds the current result list and runs searches.
	Results driving.ResultStore

	// Selection tracks the focused result.
	Selection driving.SelectionController

	// Actions lists and runs file actions.
	Actions driving.ActionService

	// Preview loads file previews. Optional.
	Preview driving.PreviewService

	// Assist provides suggestions, summaries and highlighting. Optional.
	Assist driving.AssistService

	// History records submitted queries. Optional.
	History driving.HistoryService

	// Integrations manages sign-in to remote services. Optional.
	Integrations driving.IntegrationService

	// Settings reads application settings. Optional.
	Settings driving.SettingsService

	// Exit is closed when the host shuts the application down. Optional.
	Exit <-chan struct{}

	// Notices carries host messages shown in the status bar. Optional.
	Notices <-chan string
}

// NewPorts returns Ports holding just the required services.
func NewPorts(
	results driving.ResultStore,
	selection driving.SelectionController,
	actions driving.ActionService,
) *Ports {
	return &Ports{
		Results:   results,
		Selection: selection,
		Actions:   actions,
	}
}

// Validate reports every required port that is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	var errs []error
	if p.Results == nil {
		errs = append(errs, ErrMissingResultStore)
	}
	if p.Selection == nil {
		errs = append(errs, ErrMissingSelection)
	}
	if p.Actions == nil {
		errs = append(errs, ErrMissingActionService)
	}
	return errors.Join(errs...)
}
