// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sift/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/components/palette"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/components/preview"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/router"
	"github.com/custodia-labs/sift/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driving"
	"github.com/custodia-labs/sift/internal/logger"
)

// Services are the core services the view drives. Results, Selection and
// Actions are required; the rest may be nil.
type Services struct {
	Results   driving.ResultStore
	Selection driving.SelectionController
	Actions   driving.ActionService
	Preview   driving.PreviewService
	Assist    driving.AssistService
	History   driving.HistoryService
}

// View is the search screen: query input, result list, preview pane,
// action palette and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	palette   *palette.Palette
	preview   *preview.Pane
	statusbar *status.Bar

	svc Services
	ctx context.Context

	debounce time.Duration
	// pendingRecord is the submitted query to store in history once its
	// response is applied.
	pendingRecord string

	width  int
	height int
	ready  bool
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, svc Services) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	debounce := domain.DefaultDebounce
	if svc.Results != nil {
		if d := svc.Results.Settings().Debounce; d > 0 {
			debounce = d
		}
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewSearchInput(s),
		list:      list.NewResultList(s),
		palette:   palette.New(s),
		preview:   preview.New(s, ""),
		statusbar: status.NewBar(s, km),
		svc:       svc,
		ctx:       context.Background(),
		debounce:  debounce,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles non-key messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DebounceElapsed:
		if msg.Query != v.input.Value() {
			return v, nil
		}
		return v, v.submit(msg.Query, false)

	case messages.SearchCompleted:
		return v, v.handleSearchCompleted(msg.Response)

	case messages.PreviewLoaded:
		return v, v.handlePreviewLoaded(msg)

	case messages.SummaryLoaded:
		if v.svc.Selection.IsCurrent(msg.Token) {
			v.preview.SetSummary(msg.Summary)
		}
		return v, nil

	case messages.HighlightLoaded:
		if v.svc.Selection.IsCurrent(msg.Token) && msg.Text != "" {
			v.preview.SetHighlight(msg.Text)
		}
		return v, nil

	case messages.SuggestionLoaded:
		v.input.SetSuggestion(msg.Query, msg.Suggestion)
		return v, nil

	case messages.ActionExecuted:
		v.handleActionExecuted(msg)
		return v, nil

	case messages.HistoryRecorded:
		if msg.Err != nil {
			logger.Warn("history: record %q: %v", msg.Query, msg.Err)
		}
		return v, nil
	}

	// Cursor blink and other input internals
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// HandleKey applies a routed key press to the region it was routed to.
func (v *View) HandleKey(route router.Route, msg tea.KeyMsg) tea.Cmd {
	switch route.Region {
	case router.RegionPalette:
		return v.handlePaletteKey(route, msg)
	case router.RegionResults:
		return v.handleResultsKey(route)
	default:
		return v.handleSearchKey(route, msg)
	}
}

func (v *View) handleSearchKey(route router.Route, msg tea.KeyMsg) tea.Cmd {
	switch route.Intent {
	case router.IntentConfirm:
		return v.submit(v.input.Value(), true)
	case router.IntentAcceptSuggestion:
		if !v.input.AcceptSuggestion() {
			return nil
		}
		return v.scheduleSearch()
	case router.IntentClose:
		if v.input.Value() == "" {
			return nil
		}
		v.input.Reset()
		return v.submit("", false)
	case router.IntentFocusSearch:
		return v.input.Focus()
	case router.IntentNone:
		before := v.input.Value()
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		if v.input.Value() == before {
			return cmd
		}
		return tea.Batch(cmd, v.scheduleSearch())
	default:
		return nil
	}
}

func (v *View) handleResultsKey(route router.Route) tea.Cmd {
	switch route.Intent {
	case router.IntentUp:
		v.svc.Selection.MoveUp()
		return v.syncSelection()
	case router.IntentDown:
		v.svc.Selection.MoveDown()
		return v.syncSelection()
	case router.IntentFocusResults:
		v.input.Blur()
		return nil
	default:
		return nil
	}
}

func (v *View) handlePaletteKey(route router.Route, msg tea.KeyMsg) tea.Cmd {
	switch route.Intent {
	case router.IntentTogglePalette:
		if route.Mode == router.ModePaletteOpen {
			v.OpenPalette()
		} else {
			v.palette.Close()
		}
		return nil
	case router.IntentClose:
		v.palette.Close()
		return nil
	case router.IntentUp:
		v.palette.MoveUp()
		return nil
	case router.IntentDown:
		v.palette.MoveDown()
		return nil
	case router.IntentConfirm:
		action, ok := v.palette.Highlighted()
		if !ok {
			v.palette.Close()
			return nil
		}
		return v.runAction(action)
	case router.IntentNone:
		if action, ok := v.palette.Lookup(msg.String()); ok {
			return v.runAction(action)
		}
		switch msg.Type {
		case tea.KeyRunes:
			v.palette.AppendFilter(msg.Runes...)
		case tea.KeySpace:
			v.palette.AppendFilter(' ')
		case tea.KeyBackspace:
			v.palette.Backspace()
		}
		return nil
	default:
		return nil
	}
}

// HandleMouse focuses the result under a left click on the list. Clicks
// are ignored while the palette is open.
func (v *View) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || v.palette.IsOpen() {
		return nil
	}
	listWidth, _ := v.columns()
	if msg.X >= listWidth {
		return nil
	}
	top := lipgloss.Height(v.input.View()) + 1
	row, ok := v.list.RowAt(msg.Y - top)
	if !ok || row == v.svc.Selection.FocusedIndex() {
		return nil
	}
	if !v.svc.Selection.SelectAt(row) {
		return nil
	}
	return v.syncSelection()
}

// OpenPalette opens the palette for the focused result. It reports false
// and leaves the palette closed when nothing is focused.
func (v *View) OpenPalette() bool {
	item, ok := v.svc.Selection.Selected()
	if !ok {
		v.palette.Close()
		v.statusbar.SetMessage("No file selected")
		return false
	}
	v.palette.Open(item, v.svc.Actions.ActionsFor(item.FileType()))
	v.statusbar.SetMessage("")
	return true
}

// PaletteOpen reports whether the palette is showing.
func (v *View) PaletteOpen() bool {
	return v.palette.IsOpen()
}

// runAction closes the palette and executes action in the background.
func (v *View) runAction(action domain.ActionDescriptor) tea.Cmd {
	item := v.palette.Item()
	v.palette.Close()

	actions, ctx := v.svc.Actions, v.ctx
	return func() tea.Msg {
		err := actions.Execute(ctx, action.Command, item)
		return messages.ActionExecuted{Action: action, Err: err}
	}
}

func (v *View) handleActionExecuted(msg messages.ActionExecuted) {
	if msg.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Action.Label + ": " + msg.Err.Error())
		return
	}
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage(msg.Action.Label + ": done")
}

// scheduleSearch fires a DebounceElapsed for the current query after the
// debounce interval, which follows settings reloads.
func (v *View) scheduleSearch() tea.Cmd {
	if v.svc.Results != nil {
		if d := v.svc.Results.Settings().Debounce; d > 0 {
			v.debounce = d
		}
	}
	query := v.input.Value()
	return tea.Tick(v.debounce, func(time.Time) tea.Msg {
		return messages.DebounceElapsed{Query: query}
	})
}

// submit starts a search for query. Submitted searches are recorded in
// history once their response is applied.
func (v *View) submit(query string, record bool) tea.Cmd {
	req, ok := v.svc.Results.Submit(query)
	if !ok {
		v.pendingRecord = ""
		v.syncResults()
		return v.syncSelection()
	}

	if record {
		v.pendingRecord = query
	} else {
		v.pendingRecord = ""
	}
	v.statusbar.SetState(status.StateSearching)
	v.statusbar.SetMessage("")

	results, ctx := v.svc.Results, v.ctx
	cmds := []tea.Cmd{func() tea.Msg {
		return messages.SearchCompleted{Response: results.Fetch(ctx, req)}
	}}
	if v.svc.Assist != nil && v.svc.Assist.Available() && !record {
		assist := v.svc.Assist
		cmds = append(cmds, func() tea.Msg {
			return messages.SuggestionLoaded{Query: query, Suggestion: assist.Suggest(ctx, query)}
		})
	}
	return tea.Batch(cmds...)
}

func (v *View) handleSearchCompleted(resp driving.SearchResponse) tea.Cmd {
	if !v.svc.Results.Apply(resp) {
		return nil
	}
	v.syncResults()

	var cmds []tea.Cmd
	if v.pendingRecord != "" && v.pendingRecord == resp.Query && resp.Err == nil && v.svc.History != nil {
		history, ctx, query, n := v.svc.History, v.ctx, resp.Query, len(resp.Results)
		cmds = append(cmds, func() tea.Msg {
			return messages.HistoryRecorded{Query: query, Err: history.Record(ctx, query, n)}
		})
	}
	v.pendingRecord = ""
	cmds = append(cmds, v.syncSelection())
	return tea.Batch(cmds...)
}

// syncResults copies the store's list into the selection and the list.
func (v *View) syncResults() {
	results := v.svc.Results.Results()
	v.svc.Selection.SetResults(results)

	if v.svc.Results.Failed() {
		v.list.SetError(v.svc.Results.Err())
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.svc.Results.Err().Error())
		return
	}
	v.list.SetResults(results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(results))
}

// syncSelection shows the focused result and starts loading its preview.
func (v *View) syncSelection() tea.Cmd {
	v.list.SetSelected(v.svc.Selection.FocusedIndex())

	item, ok := v.svc.Selection.Selected()
	if !ok {
		v.statusbar.SetFocus(-1, "")
		v.preview.Clear()
		return nil
	}
	where := ""
	if !item.IsLocal() {
		where = item.Location
	}
	v.statusbar.SetFocus(v.svc.Selection.FocusedIndex(), where)
	v.preview.SetItem(item)

	token := v.svc.Selection.Token()
	if v.svc.Preview == nil {
		v.preview.SetPreview(domain.Preview{ResultID: item.ID, Kind: item.FileType(), Text: item.Document})
		return v.assistCmds(token, item.Document)
	}
	previews, ctx := v.svc.Preview, v.ctx
	return func() tea.Msg {
		return messages.PreviewLoaded{Token: token, Preview: previews.Load(ctx, item)}
	}
}

func (v *View) handlePreviewLoaded(msg messages.PreviewLoaded) tea.Cmd {
	if !v.svc.Selection.IsCurrent(msg.Token) {
		return nil
	}
	v.preview.SetPreview(msg.Preview)
	if msg.Preview.Err != nil || msg.Preview.Kind == domain.FileTypeImage {
		return nil
	}
	return v.assistCmds(msg.Token, msg.Preview.Text)
}

// assistCmds requests the summary and the highlighted text for content.
func (v *View) assistCmds(token driving.SelectionToken, content string) tea.Cmd {
	if v.svc.Assist == nil || !v.svc.Assist.Available() || content == "" {
		return nil
	}
	assist, ctx, query := v.svc.Assist, v.ctx, v.svc.Results.Query()
	cmds := []tea.Cmd{func() tea.Msg {
		return messages.SummaryLoaded{Token: token, Summary: assist.Summarise(ctx, content, query)}
	}}
	if item, ok := v.preview.Item(); ok && item.FileType() != domain.FileTypeCode {
		cmds = append(cmds, func() tea.Msg {
			return messages.HighlightLoaded{Token: token, Text: assist.Highlight(ctx, content, query)}
		})
	}
	return tea.Batch(cmds...)
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	left := v.list.View()
	if v.palette.IsOpen() {
		left = lipgloss.JoinVertical(lipgloss.Left, left, "", v.palette.View())
	}
	listWidth, _ := v.columns()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Render(left),
		"  ",
		v.preview.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		v.input.View(),
		"",
		body,
		"",
		v.statusbar.View(),
	)
}

// columns splits the width between the list and the preview.
func (v *View) columns() (int, int) {
	listWidth := v.width * 2 / 5
	if listWidth < 24 {
		listWidth = 24
	}
	previewWidth := v.width - listWidth - 2
	if previewWidth < 20 {
		previewWidth = 20
	}
	return listWidth, previewWidth
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	listWidth, previewWidth := v.columns()
	bodyHeight := height - 6 // input, spacing, status
	v.input.SetWidth(width)
	v.list.SetDimensions(listWidth, bodyHeight)
	v.palette.SetWidth(listWidth)
	v.preview.SetDimensions(previewWidth, bodyHeight)
	v.statusbar.SetWidth(width)
}

// SetFocus updates the components for the focused region.
func (v *View) SetFocus(region router.Region) tea.Cmd {
	v.list.SetFocused(region == router.RegionResults)
	switch region {
	case router.RegionSearch:
		v.statusbar.SetHints(v.keymap.SearchHelp())
		return v.input.Focus()
	case router.RegionResults:
		v.statusbar.SetHints(v.keymap.ResultsHelp())
		v.input.Blur()
	case router.RegionPalette:
		v.statusbar.SetHints(v.keymap.PaletteHelp())
	}
	return nil
}

// SetHints sets the keybinding hints in the status bar.
func (v *View) SetHints(bindings []key.Binding) {
	v.statusbar.SetHints(bindings)
}

// SetNotice shows a host notice in the status bar.
func (v *View) SetNotice(text string) {
	v.statusbar.SetNotice(text)
}

// SetStatus shows message in the status bar.
func (v *View) SetStatus(message string) {
	v.statusbar.SetMessage(message)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the text in the input.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the input text without searching.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the displayed results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the focused index, or -1.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Suggestion returns the suggestion shown for the current query.
func (v *View) Suggestion() string {
	return v.input.Suggestion()
}

// Preview returns the loaded preview for the focused result.
func (v *View) Preview() (domain.Preview, bool) {
	return v.preview.Preview()
}

// Summary returns the summary shown for the focused result.
func (v *View) Summary() string {
	return v.preview.Summary()
}

// Status returns the status bar message.
func (v *View) Status() string {
	return v.statusbar.Message()
}

// PaletteActions returns the actions listed in the open palette.
func (v *View) PaletteActions() []domain.ActionDescriptor {
	return v.palette.Actions()
}

// PaletteIndex returns the highlighted palette entry, or -1.
func (v *View) PaletteIndex() int {
	return v.palette.Index()
}
