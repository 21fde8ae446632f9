// Package styles holds the colours and lipgloss styles shared by the
// search screen, the action palette and the settings view.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the set of colours the styles are built from.
type Theme struct {
	Accent  lipgloss.Color // focused headers, selection background
	Label   lipgloss.Color // unfocused headers, summary label
	Text    lipgloss.Color
	Dim     lipgloss.Color // paths, hints, placeholders
	Remote  lipgloss.Color // location badge of non-local results
	Good    lipgloss.Color // connected integrations, confirmations
	Caution lipgloss.Color // notices and in-flight work
	Bad     lipgloss.Color // errors
	Frame   lipgloss.Color // borders
	Bar     lipgloss.Color // status bar background
}

// DefaultTheme returns the dark theme Sift ships with.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.Color("#5FAFD7"),
		Label:   lipgloss.Color("#87D7AF"),
		Text:    lipgloss.Color("#DADADA"),
		Dim:     lipgloss.Color("#808080"),
		Remote:  lipgloss.Color("#D7AF5F"),
		Good:    lipgloss.Color("#87D787"),
		Caution: lipgloss.Color("#FFD75F"),
		Bad:     lipgloss.Color("#FF5F5F"),
		Frame:   lipgloss.Color("#4E4E4E"),
		Bar:     lipgloss.Color("#262626"),
	}
}

// Styles are the rendered forms of a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	// Kind is the file type tag after a result name.
	Kind lipgloss.Style
	// Remote marks results that live in a connected service.
	Remote lipgloss.Style
	// Summary is the label in front of the one-sentence summary.
	Summary lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Notice  lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style
	// Overlay frames the action palette.
	Overlay lipgloss.Style
}

// NewStyles builds styles from theme. A nil theme means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme: theme,

		Title:    fg(theme.Accent).Bold(true),
		Subtitle: fg(theme.Label).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Dim),
		Selected: fg(theme.Bar).Background(theme.Accent).Bold(true),

		Kind:    fg(theme.Dim).Italic(true),
		Remote:  fg(theme.Remote),
		Summary: fg(theme.Label).Bold(true),

		Error:   fg(theme.Bad),
		Success: fg(theme.Good),
		Warning: fg(theme.Caution),
		Notice:  fg(theme.Caution).Italic(true),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),
		StatusBar: fg(theme.Dim).Background(theme.Bar).Padding(0, 1),
		Help:      fg(theme.Dim).Faint(true),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Frame),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),
	}
}

// DefaultStyles returns NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the colours behind s.
func (s *Styles) Theme() *Theme {
	return s.theme
}
