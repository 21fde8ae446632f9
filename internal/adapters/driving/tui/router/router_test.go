package router

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestNew_StartsIdleInSearch(t *testing.T) {
	r := New(nil)

	assert.Equal(t, RegionSearch, r.Region())
	assert.Equal(t, ModeIdle, r.Mode())
}

func TestRoute_CtrlKTogglesPalette(t *testing.T) {
	r := New(nil)

	got := r.Route(key(tea.KeyCtrlK))
	assert.Equal(t, Route{Region: RegionPalette, Intent: IntentTogglePalette, Mode: ModePaletteOpen}, got)

	got = r.Route(key(tea.KeyCtrlK))
	assert.Equal(t, Route{Region: RegionPalette, Intent: IntentTogglePalette, Mode: ModeIdle}, got)
	assert.Equal(t, RegionSearch, r.Region())
}

func TestRoute_EscClosesPaletteToOpener(t *testing.T) {
	r := New(nil)
	r.Route(key(tea.KeyShiftTab))
	assert.Equal(t, RegionResults, r.Region())

	r.Route(key(tea.KeyCtrlK))
	got := r.Route(key(tea.KeyEsc))

	assert.Equal(t, IntentClose, got.Intent)
	assert.Equal(t, ModeIdle, got.Mode)
	assert.Equal(t, RegionResults, r.Region())
}

func TestRoute_PaletteOwnsNavigation(t *testing.T) {
	r := New(nil)
	r.Route(key(tea.KeyCtrlK))

	assert.Equal(t, Route{RegionPalette, IntentUp, ModePaletteOpen}, r.Route(key(tea.KeyUp)))
	assert.Equal(t, Route{RegionPalette, IntentDown, ModePaletteOpen}, r.Route(key(tea.KeyDown)))
	assert.Equal(t, Route{RegionPalette, IntentConfirm, ModePaletteOpen}, r.Route(key(tea.KeyEnter)))
	assert.Equal(t, Route{RegionPalette, IntentNone, ModePaletteOpen}, r.Route(runes("x")))
}

func TestRoute_SearchArrowsDriveResults(t *testing.T) {
	r := New(nil)

	assert.Equal(t, Route{RegionResults, IntentDown, ModeIdle}, r.Route(key(tea.KeyDown)))
	assert.Equal(t, Route{RegionResults, IntentUp, ModeIdle}, r.Route(key(tea.KeyUp)))
	assert.Equal(t, RegionSearch, r.Region())
}

func TestRoute_SearchKeys(t *testing.T) {
	r := New(nil)

	assert.Equal(t, IntentNone, r.Route(runes("k")).Intent)
	assert.Equal(t, IntentNone, r.Route(runes("/")).Intent)
	assert.Equal(t, IntentConfirm, r.Route(key(tea.KeyEnter)).Intent)
	assert.Equal(t, IntentAcceptSuggestion, r.Route(key(tea.KeyTab)).Intent)
	assert.Equal(t, IntentClose, r.Route(key(tea.KeyEsc)).Intent)
	assert.Equal(t, RegionSearch, r.Region())
}

func TestRoute_ResultsEnterOpensPalette(t *testing.T) {
	r := New(nil)
	r.Route(key(tea.KeyShiftTab))

	got := r.Route(key(tea.KeyEnter))

	assert.Equal(t, Route{RegionPalette, IntentTogglePalette, ModePaletteOpen}, got)

	r.ClosePalette()
	assert.Equal(t, RegionResults, r.Region())
}

func TestRoute_ResultsBackToSearch(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("/"), key(tea.KeyEsc), key(tea.KeyShiftTab)} {
		r := New(nil)
		r.Focus(RegionResults)

		got := r.Route(msg)

		assert.Equal(t, IntentFocusSearch, got.Intent, msg.String())
		assert.Equal(t, RegionSearch, r.Region())
	}
}

func TestRoute_Settings(t *testing.T) {
	r := New(nil)

	got := r.Route(key(tea.KeyCtrlS))
	assert.Equal(t, Route{RegionSettings, IntentOpenSettings, ModeIdle}, got)

	assert.Equal(t, IntentDown, r.Route(key(tea.KeyDown)).Intent)
	assert.Equal(t, IntentConfirm, r.Route(key(tea.KeyEnter)).Intent)
	assert.Equal(t, IntentNone, r.Route(runes("l")).Intent)

	got = r.Route(key(tea.KeyEsc))
	assert.Equal(t, IntentClose, got.Intent)
	assert.Equal(t, RegionSearch, r.Region())
}

func TestRoute_QuitFromAnyRegion(t *testing.T) {
	for _, region := range []Region{RegionSearch, RegionResults, RegionPalette, RegionSettings} {
		r := New(nil)
		r.Focus(region)

		got := r.Route(key(tea.KeyCtrlC))

		assert.Equal(t, IntentQuit, got.Intent, region.String())
		assert.Equal(t, region, got.Region)
	}
}

// Every key lands in exactly one region, and that region is the focused
// one or the list the search box drives.
func TestRoute_ExactlyOneRegion(t *testing.T) {
	keys := []tea.KeyMsg{
		key(tea.KeyUp), key(tea.KeyDown), key(tea.KeyEnter), key(tea.KeyEsc),
		key(tea.KeyTab), key(tea.KeyShiftTab), runes("a"), runes("/"),
	}
	for _, region := range []Region{RegionSearch, RegionResults, RegionPalette, RegionSettings} {
		for _, msg := range keys {
			r := New(nil)
			r.Focus(region)

			got := r.Route(msg)

			allowed := []Region{region, r.Region()}
			if region == RegionSearch {
				allowed = append(allowed, RegionResults)
			}
			assert.Contains(t, allowed, got.Region, "%s/%s", region, msg)
		}
	}
}

func TestFocus_PaletteRemembersOpener(t *testing.T) {
	r := New(nil)
	r.Focus(RegionSettings)
	r.Focus(RegionPalette)

	assert.Equal(t, ModePaletteOpen, r.Mode())
	r.ClosePalette()
	assert.Equal(t, RegionSettings, r.Region())

	r.ClosePalette()
	assert.Equal(t, RegionSettings, r.Region())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "palette", RegionPalette.String())
	assert.Equal(t, "unknown", Region(42).String())
	assert.Equal(t, "palette-open", ModePaletteOpen.String())
	assert.Equal(t, "idle", ModeIdle.String())
}
