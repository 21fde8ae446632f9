// Package palette provides the action palette shown over the result list.
package palette

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/sift/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sift/internal/core/domain"
)

// Palette lists the actions available for one result. Typing narrows the
// list to labels containing the filter, ignoring case. Movement wraps in
// both directions over the entries shown.
type Palette struct {
	styles  *styles.Styles
	item    domain.SearchResult
	all     []domain.ActionDescriptor
	actions []domain.ActionDescriptor
	filter  string
	cursor  domain.Cursor
	open    bool
	width   int
}

// New creates a closed palette.
func New(s *styles.Styles) *Palette {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Palette{styles: s, cursor: domain.NewCursor(0), width: 48}
}

// Open shows actions for item with the first action highlighted.
func (p *Palette) Open(item domain.SearchResult, actions []domain.ActionDescriptor) {
	p.item = item
	p.all = actions
	p.actions = actions
	p.filter = ""
	p.cursor.Reset(len(actions))
	p.open = true
}

// Close hides the palette.
func (p *Palette) Close() {
	p.open = false
	p.all = nil
	p.actions = nil
	p.filter = ""
	p.cursor.Reset(0)
}

// IsOpen reports whether the palette is showing.
func (p *Palette) IsOpen() bool {
	return p.open
}

// Item returns the result the palette was opened for.
func (p *Palette) Item() domain.SearchResult {
	return p.item
}

// Actions returns the actions the filter lets through.
func (p *Palette) Actions() []domain.ActionDescriptor {
	return p.actions
}

// Filter returns the text typed since the palette opened.
func (p *Palette) Filter() string {
	return p.filter
}

// SetFilter narrows the list to actions whose label contains filter and
// highlights the first of them.
func (p *Palette) SetFilter(filter string) {
	if !p.open {
		return
	}
	p.filter = filter
	needle := strings.ToLower(filter)
	p.actions = nil
	for _, a := range p.all {
		if strings.Contains(strings.ToLower(a.Label), needle) {
			p.actions = append(p.actions, a)
		}
	}
	p.cursor.Reset(len(p.actions))
}

// AppendFilter adds typed runes to the filter.
func (p *Palette) AppendFilter(r ...rune) {
	if len(r) == 0 {
		return
	}
	p.SetFilter(p.filter + string(r))
}

// Backspace drops the last rune of the filter. It reports false when the
// filter was already empty.
func (p *Palette) Backspace() bool {
	if p.filter == "" {
		return false
	}
	r := []rune(p.filter)
	p.SetFilter(string(r[:len(r)-1]))
	return true
}

// Index returns the highlighted index, or -1 when there is nothing to pick.
func (p *Palette) Index() int {
	return p.cursor.Index()
}

// MoveUp highlights the previous action.
func (p *Palette) MoveUp() {
	p.cursor.MoveUp()
}

// MoveDown highlights the next action.
func (p *Palette) MoveDown() {
	p.cursor.MoveDown()
}

// Highlighted returns the highlighted action.
func (p *Palette) Highlighted() (domain.ActionDescriptor, bool) {
	i := p.cursor.Index()
	if !p.open || i < 0 || i >= len(p.actions) {
		return domain.ActionDescriptor{}, false
	}
	return p.actions[i], true
}

// Lookup returns the action bound to shortcut, whether or not the filter
// shows it.
func (p *Palette) Lookup(shortcut string) (domain.ActionDescriptor, bool) {
	if !p.open || shortcut == "" {
		return domain.ActionDescriptor{}, false
	}
	for _, a := range p.all {
		if a.Shortcut == shortcut {
			return a, true
		}
	}
	return domain.ActionDescriptor{}, false
}

// SetWidth sets the rendered width.
func (p *Palette) SetWidth(width int) {
	p.width = width
}

// View renders the palette, or "" when closed.
func (p *Palette) View() string {
	if !p.open {
		return ""
	}

	lines := []string{p.styles.Title.Render("Actions: " + p.item.Name())}
	if p.filter == "" {
		lines = append(lines, p.styles.Muted.Render("Type to filter"))
	} else {
		lines = append(lines, p.styles.Normal.Render("Filter: "+p.filter))
	}
	switch {
	case len(p.actions) > 0:
	case p.filter != "":
		lines = append(lines, p.styles.Muted.Render("No matching actions"))
	default:
		lines = append(lines, p.styles.Muted.Render("No actions"))
	}

	labelWidth := p.width - 16
	if labelWidth < 12 {
		labelWidth = 12
	}
	for i, a := range p.actions {
		line := fmt.Sprintf("%-*s %8s", labelWidth, a.Label, a.Shortcut)
		if i == p.cursor.Index() {
			lines = append(lines, p.styles.Selected.Render("> "+line))
		} else {
			lines = append(lines, p.styles.Normal.Render("  "+line))
		}
	}

	return p.styles.Overlay.
		Width(p.width).
		Render(strings.Join(lines, "\n"))
}
