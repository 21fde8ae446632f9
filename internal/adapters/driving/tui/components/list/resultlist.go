// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sift/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sift/internal/core/domain"
)

const headerLines = 2

// ResultList displays search results. It does not move the selection
// itself: the owner sets the focused index after every move.
type ResultList struct {
	results  []domain.SearchResult
	selected int
	err      error
	focused  bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		results:  nil,
		selected: -1,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if r.err != nil {
		return r.styles.Error.Render("Search unavailable: " + r.err.Error())
	}
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)+2)

	header := fmt.Sprintf("Files (%d)", len(r.results))
	if r.focused {
		lines = append(lines, r.styles.Title.Render(header), "")
	} else {
		lines = append(lines, r.styles.Subtitle.Render(header), "")
	}

	start, end := r.window()
	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// window returns the range of results on screen. Each result takes two
// lines, name and location, under a two-line header.
func (r *ResultList) window() (int, int) {
	visibleCount := (r.height - headerLines) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}
	return start, end
}

// RowAt maps line y of the rendered list, counted from its top, to the
// result drawn there.
func (r *ResultList) RowAt(y int) (int, bool) {
	if r.err != nil || len(r.results) == 0 || y < headerLines {
		return -1, false
	}
	start, end := r.window()
	i := start + (y-headerLines)/2
	if i >= end {
		return -1, false
	}
	return i, true
}

func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	name := result.Name()
	if name == "" {
		name = "(unnamed)"
	}
	maxNameLen := r.width - 16
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	name = truncate(name, maxNameLen)
	kind := "[" + string(result.FileType()) + "]"

	var nameLine string
	if index == r.selected {
		nameLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s %s", indicator, maxNameLen, name, kind))
	} else {
		nameLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s ", indicator, maxNameLen, name)) +
			r.styles.Kind.Render(kind)
	}

	maxPathLen := r.width - 6
	if maxPathLen < 20 {
		maxPathLen = 20
	}
	if result.IsLocal() {
		return nameLine + "\n" + r.styles.Muted.Render("    "+truncate(result.FilePath, maxPathLen))
	}
	badge := result.Location + ": "
	return nameLine + "\n    " + r.styles.Remote.Render(badge) +
		r.styles.Muted.Render(truncate(result.FilePath, maxPathLen-len(badge)))
}

// truncate shortens s to n runes, ending in "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// SetResults replaces the results and clears any error.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.err = nil
	if len(results) == 0 {
		r.selected = -1
	} else if r.selected < 0 || r.selected >= len(results) {
		r.selected = 0
	}
}

// SetError shows err in place of the results.
func (r *ResultList) SetError(err error) {
	r.err = err
	r.results = nil
	r.selected = -1
}

// Err returns the error being shown, if any.
func (r *ResultList) Err() error {
	return r.err
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the index of the selected result, or -1.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index. Out of range values are ignored.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SetFocused marks the list as holding keyboard focus.
func (r *ResultList) SetFocused(focused bool) {
	r.focused = focused
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
