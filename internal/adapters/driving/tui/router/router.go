// Package router decides which part of the TUI handles each key press.
//
// The Router owns keyboard focus. The application is Idle while a region
// other than the palette has focus and PaletteOpen while the palette does.
// ctrl+k toggles between the two from anywhere, esc returns from the
// palette to the region that opened it, and every key is routed to exactly
// one region.
package router

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sift/internal/adapters/driving/tui/keymap"
)

// Region is a focusable part of the screen.
type Region int

const (
	// RegionSearch is the query input.
	RegionSearch Region = iota
	// RegionResults is the file list.
	RegionResults
	// RegionPalette is the action menu.
	RegionPalette
	// RegionSettings is the integrations and settings menu.
	RegionSettings
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionSearch:
		return "search"
	case RegionResults:
		return "results"
	case RegionPalette:
		return "palette"
	case RegionSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Mode is the keyboard mode.
type Mode int

const (
	// ModeIdle means the palette is closed.
	ModeIdle Mode = iota
	// ModePaletteOpen means the palette has focus.
	ModePaletteOpen
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModePaletteOpen {
		return "palette-open"
	}
	return "idle"
}

// Intent is what a key means in the region that receives it.
type Intent int

const (
	// IntentNone forwards the key to the region unchanged (typing).
	IntentNone Intent = iota
	IntentTogglePalette
	IntentClose
	IntentUp
	IntentDown
	IntentConfirm
	IntentAcceptSuggestion
	IntentFocusResults
	IntentFocusSearch
	IntentOpenSettings
	IntentQuit
)

// Route is the outcome of routing one key.
type Route struct {
	Region Region
	Intent Intent
	// Mode is the mode after the key was routed.
	Mode Mode
}

// Router owns keyboard focus.
type Router struct {
	keys   *keymap.KeyMap
	region Region
	prev   Region
}

// New creates a router focused on the search input.
func New(km *keymap.KeyMap) *Router {
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Router{keys: km, region: RegionSearch, prev: RegionSearch}
}

// Region returns the focused region.
func (r *Router) Region() Region {
	return r.region
}

// Mode returns the keyboard mode.
func (r *Router) Mode() Mode {
	if r.region == RegionPalette {
		return ModePaletteOpen
	}
	return ModeIdle
}

// ClosePalette returns focus to the region that opened the palette.
// It is a no-op when the palette is closed.
func (r *Router) ClosePalette() {
	if r.region == RegionPalette {
		r.region = r.prev
	}
}

// Focus moves focus to region. Focusing the palette remembers the region
// it was opened from.
func (r *Router) Focus(region Region) {
	if region == r.region {
		return
	}
	if region == RegionPalette {
		r.prev = r.region
	}
	r.region = region
}

// Route decides which region handles msg and applies any focus change the
// key implies.
func (r *Router) Route(msg tea.KeyMsg) Route {
	k := msg.String()

	switch {
	case keymap.Matches(k, r.keys.Quit):
		return r.route(r.region, IntentQuit)
	case keymap.Matches(k, r.keys.TogglePalette):
		if r.region == RegionPalette {
			r.ClosePalette()
		} else {
			r.Focus(RegionPalette)
		}
		return r.route(RegionPalette, IntentTogglePalette)
	}

	switch r.region {
	case RegionPalette:
		return r.routePalette(k)
	case RegionResults:
		return r.routeResults(k)
	case RegionSettings:
		return r.routeSettings(k)
	default:
		return r.routeSearch(k)
	}
}

func (r *Router) routePalette(k string) Route {
	switch {
	case keymap.Matches(k, r.keys.Close):
		r.ClosePalette()
		return r.route(RegionPalette, IntentClose)
	case keymap.Matches(k, r.keys.Up):
		return r.route(RegionPalette, IntentUp)
	case keymap.Matches(k, r.keys.Down):
		return r.route(RegionPalette, IntentDown)
	case keymap.Matches(k, r.keys.Confirm):
		return r.route(RegionPalette, IntentConfirm)
	default:
		return r.route(RegionPalette, IntentNone)
	}
}

// routeSearch keeps typing in the input while the arrows drive the list,
// so the user never has to leave the query to pick a file.
func (r *Router) routeSearch(k string) Route {
	switch {
	case keymap.Matches(k, r.keys.Up):
		return r.route(RegionResults, IntentUp)
	case keymap.Matches(k, r.keys.Down):
		return r.route(RegionResults, IntentDown)
	case keymap.Matches(k, r.keys.Confirm):
		return r.route(RegionSearch, IntentConfirm)
	case keymap.Matches(k, r.keys.AcceptSuggestion):
		return r.route(RegionSearch, IntentAcceptSuggestion)
	case keymap.Matches(k, r.keys.SwitchFocus):
		r.Focus(RegionResults)
		return r.route(RegionResults, IntentFocusResults)
	case keymap.Matches(k, r.keys.Settings):
		r.Focus(RegionSettings)
		return r.route(RegionSettings, IntentOpenSettings)
	case keymap.Matches(k, r.keys.Close):
		return r.route(RegionSearch, IntentClose)
	default:
		return r.route(RegionSearch, IntentNone)
	}
}

func (r *Router) routeResults(k string) Route {
	switch {
	case keymap.Matches(k, r.keys.Up):
		return r.route(RegionResults, IntentUp)
	case keymap.Matches(k, r.keys.Down):
		return r.route(RegionResults, IntentDown)
	case keymap.Matches(k, r.keys.Confirm):
		r.Focus(RegionPalette)
		return r.route(RegionPalette, IntentTogglePalette)
	case keymap.Matches(k, r.keys.SwitchFocus), keymap.Matches(k, r.keys.Close),
		keymap.Matches(k, r.keys.FocusSearch):
		r.Focus(RegionSearch)
		return r.route(RegionSearch, IntentFocusSearch)
	case keymap.Matches(k, r.keys.Settings):
		r.Focus(RegionSettings)
		return r.route(RegionSettings, IntentOpenSettings)
	default:
		return r.route(RegionResults, IntentNone)
	}
}

func (r *Router) routeSettings(k string) Route {
	switch {
	case keymap.Matches(k, r.keys.Close), keymap.Matches(k, r.keys.Settings):
		r.Focus(RegionSearch)
		return r.route(RegionSettings, IntentClose)
	case keymap.Matches(k, r.keys.Up):
		return r.route(RegionSettings, IntentUp)
	case keymap.Matches(k, r.keys.Down):
		return r.route(RegionSettings, IntentDown)
	case keymap.Matches(k, r.keys.Confirm):
		return r.route(RegionSettings, IntentConfirm)
	default:
		return r.route(RegionSettings, IntentNone)
	}
}

func (r *Router) route(region Region, intent Intent) Route {
	return Route{Region: region, Intent: intent, Mode: r.Mode()}
}
