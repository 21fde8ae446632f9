// Package status renders the one-line bar under the search screen.
package status

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sift/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/styles"
)

// State is what the left side of the bar reports.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateResults   State = "results"
	StateBusy      State = "busy"
)

const hintSep = " | "

// Bar shows the search state on the left and key hints on the right.
// Hints that do not fit are dropped from the end.
type Bar struct {
	styles *styles.Styles
	hints  []key.Binding

	state   State
	message string
	notice  string
	count   int
	focused int // -1 when nothing is focused
	where   string
	width   int
}

// NewBar returns a bar showing the search hints of km.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles:  s,
		hints:   km.SearchHelp(),
		state:   StateReady,
		focused: -1,
		width:   80,
	}
}

func (s *Bar) Init() tea.Cmd {
	return nil
}

func (s *Bar) View() string {
	left := s.status()
	room := s.width - lipgloss.Width(left) - 3
	right := s.fitHints(room)

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) status() string {
	var left string
	switch s.state {
	case StateSearching:
		left = s.styles.Muted.Render("Searching...")
	case StateBusy:
		left = s.styles.Warning.Render(s.message)
	case StateError:
		text := "Error"
		if s.message != "" {
			text += ": " + s.message
		}
		left = s.styles.Error.Render(text)
	default:
		switch {
		case s.message != "":
			left = s.styles.Success.Render(s.message)
		case s.count > 0:
			left = s.styles.Normal.Render(s.position())
			if s.where != "" {
				left += " " + s.styles.Remote.Render(s.where)
			}
		case s.state == StateResults:
			left = s.styles.Muted.Render("No results")
		default:
			left = s.styles.Muted.Render("Ready")
		}
	}
	if s.notice != "" {
		left += s.styles.Notice.Render("  " + s.notice)
	}
	return left
}

// position reads "3/7" when a result is focused, "7 results" otherwise.
func (s *Bar) position() string {
	if s.focused >= 0 && s.focused < s.count {
		return strconv.Itoa(s.focused+1) + "/" + strconv.Itoa(s.count)
	}
	if s.count == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", s.count)
}

// fitHints joins as many hints as fit in width cells.
func (s *Bar) fitHints(width int) string {
	var parts []string
	used := 0
	for _, b := range s.hints {
		h := b.Help()
		part := h.Key + ": " + h.Desc
		need := lipgloss.Width(part)
		if len(parts) > 0 {
			need += len(hintSep)
		}
		if used+need > width {
			break
		}
		parts = append(parts, part)
		used += need
	}
	return s.styles.Muted.Render(strings.Join(parts, hintSep))
}

// SetHints replaces the key hints, e.g. when focus moves to the palette.
func (s *Bar) SetHints(bindings []key.Binding) {
	s.hints = bindings
}

func (s *Bar) SetState(state State) {
	s.state = state
}

func (s *Bar) State() State {
	return s.state
}

// SetMessage sets text that replaces the result count, such as the
// outcome of an action.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

func (s *Bar) Message() string {
	return s.message
}

// SetNotice sets a host notice, such as a settings reload, shown after
// the state.
func (s *Bar) SetNotice(notice string) {
	s.notice = notice
}

func (s *Bar) Notice() string {
	return s.notice
}

// SetResultCount sets the number of results and forgets the focus.
func (s *Bar) SetResultCount(count int) {
	s.count = count
	s.focused = -1
	s.where = ""
}

func (s *Bar) ResultCount() int {
	return s.count
}

// SetFocus records the focused result index and where it lives; location
// is empty for local files. Pass -1 when nothing is focused.
func (s *Bar) SetFocus(index int, location string) {
	s.focused = index
	s.where = location
}

func (s *Bar) SetWidth(width int) {
	s.width = width
}

func (s *Bar) Width() int {
	return s.width
}
