// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sift/internal/adapters/driving/tui/styles"
)

// SearchInput wraps a bubbles textinput and shows a completion
// suggestion as ghost text after the cursor.
type SearchInput struct {
	textinput  textinput.Model
	styles     *styles.Styles
	suggestion string
	// suggestFor is the value the suggestion was produced for.
	suggestFor string
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search your files..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
	}
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the search input.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Sift ")
	field := s.textinput.View()
	if ghost := s.Completion(); ghost != "" && s.textinput.Focused() {
		field += s.styles.Muted.Render(ghost)
	}
	input := s.styles.InputField.Render(field)
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value and moves the cursor to the end.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
	s.textinput.CursorEnd()
}

// SetSuggestion records a suggestion produced for query. It is shown only
// while the input still holds query.
func (s *SearchInput) SetSuggestion(query, suggestion string) {
	s.suggestFor = query
	s.suggestion = suggestion
}

// Suggestion returns the suggestion for the current value, if any.
func (s *SearchInput) Suggestion() string {
	if s.suggestFor != s.textinput.Value() {
		return ""
	}
	return s.suggestion
}

// Completion returns the text the suggestion would append to the value.
func (s *SearchInput) Completion() string {
	return completion(s.textinput.Value(), s.Suggestion())
}

// AcceptSuggestion appends the completion to the value. It reports whether
// anything was accepted.
func (s *SearchInput) AcceptSuggestion() bool {
	ghost := s.Completion()
	if ghost == "" {
		return false
	}
	s.SetValue(s.textinput.Value() + ghost)
	s.suggestion, s.suggestFor = "", ""
	return true
}

// completion returns what suggestion adds to value. Models sometimes echo
// the whole query back instead of only the missing words.
func completion(value, suggestion string) string {
	if suggestion == "" {
		return ""
	}
	if len(suggestion) >= len(value) && strings.EqualFold(suggestion[:len(value)], value) {
		return suggestion[len(value):]
	}
	if strings.HasSuffix(value, " ") || strings.HasPrefix(suggestion, " ") {
		return suggestion
	}
	return " " + suggestion
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth fits the field into width cells next to the label.
func (s *SearchInput) SetWidth(width int) {
	s.textinput.Width = max(width-10, 20)
}

// Reset clears the input and any suggestion.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
	s.suggestion, s.suggestFor = "", ""
}
