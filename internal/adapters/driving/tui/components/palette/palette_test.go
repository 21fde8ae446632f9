package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sift/internal/core/domain"
)

func pdfActions() []domain.ActionDescriptor {
	return []domain.ActionDescriptor{
		{Command: domain.CommandOpenInViewer, Label: "Open in Viewer", Shortcut: "ctrl+o"},
		{Command: domain.CommandRevealInFolder, Label: "Reveal in Folder", Shortcut: "ctrl+r"},
		{Command: domain.CommandCopyContents, Label: "Copy Contents", Shortcut: "ctrl+y"},
		{Command: domain.CommandCopyFilePath, Label: "Copy File Path", Shortcut: "ctrl+p"},
	}
}

func TestPalette_OpenHighlightsFirst(t *testing.T) {
	p := New(nil)
	assert.False(t, p.IsOpen())
	assert.Equal(t, -1, p.Index())

	p.Open(domain.SearchResult{ID: "1", FilePath: "/docs/report.pdf"}, pdfActions())

	require.True(t, p.IsOpen())
	assert.Equal(t, 0, p.Index())
	got, ok := p.Highlighted()
	require.True(t, ok)
	assert.Equal(t, domain.CommandOpenInViewer, got.Command)
	assert.Equal(t, "1", p.Item().ID)
}

func TestPalette_MovementWraps(t *testing.T) {
	p := New(nil)
	p.Open(domain.SearchResult{FilePath: "/docs/report.pdf"}, pdfActions())

	p.MoveUp()
	assert.Equal(t, 3, p.Index())

	p.MoveDown()
	assert.Equal(t, 0, p.Index())

	p.MoveDown()
	p.MoveDown()
	got, _ := p.Highlighted()
	assert.Equal(t, domain.CommandCopyContents, got.Command)
}

func TestPalette_CloseClearsHighlight(t *testing.T) {
	p := New(nil)
	p.Open(domain.SearchResult{FilePath: "/a.txt"}, pdfActions())

	p.Close()

	assert.False(t, p.IsOpen())
	_, ok := p.Highlighted()
	assert.False(t, ok)
	assert.Empty(t, p.View())
}

func TestPalette_EmptyActions(t *testing.T) {
	p := New(nil)
	p.Open(domain.SearchResult{FilePath: "/a.txt"}, nil)

	p.MoveDown()

	assert.Equal(t, -1, p.Index())
	_, ok := p.Highlighted()
	assert.False(t, ok)
	assert.Contains(t, p.View(), "No actions")
}

func TestPalette_Lookup(t *testing.T) {
	p := New(nil)
	_, ok := p.Lookup("ctrl+p")
	assert.False(t, ok, "closed palette")

	p.Open(domain.SearchResult{FilePath: "/docs/report.pdf"}, pdfActions())

	got, ok := p.Lookup("ctrl+p")
	require.True(t, ok)
	assert.Equal(t, domain.CommandCopyFilePath, got.Command)

	_, ok = p.Lookup("ctrl+z")
	assert.False(t, ok)
	_, ok = p.Lookup("")
	assert.False(t, ok)
}

func TestPalette_View(t *testing.T) {
	p := New(nil)
	p.SetWidth(60)
	p.Open(domain.SearchResult{FilePath: "/docs/report.pdf"}, pdfActions())
	p.MoveDown()

	view := p.View()

	assert.Contains(t, view, "Actions: report.pdf")
	assert.Contains(t, view, "Open in Viewer")
	assert.Contains(t, view, "> Reveal in Folder")
	assert.Contains(t, view, "ctrl+y")
}

func TestPalette_FilterIgnoresCase(t *testing.T) {
	p := New(nil)
	p.Open(domain.SearchResult{FilePath: "/docs/report.pdf"}, pdfActions())

	p.AppendFilter([]rune("COPY")...)

	assert.Equal(t, "COPY", p.Filter())
	assert.Equal(t,
		[]domain.Command{domain.CommandCopyContents, domain.CommandCopyFilePath},
		[]domain.Command{p.Actions()[0].Command, p.Actions()[1].Command})
	assert.Len(t, p.Actions(), 2)
	got, ok := p.Highlighted()
	require.True(t, ok)
	assert.Equal(t, domain.CommandCopyContents, got.Command)
}

func TestPalette_FilterMovementWrapsOverMatches(t *testing.T) {
	p := New(nil)
	p.Open(domain.SearchResult{FilePath: "/docs/report.pdf"}, pdfActions())
	p.AppendFilter('c', 'o', 'p')

	p.MoveUp()
	assert.Equal(t, 1, p.Index())
	p.MoveDown()
	assert.Equal(t, 0, p.Index())
	p.MoveDown()
	p.MoveDown()
	got, _ := p.Highlighted()
	assert.Equal(t, domain.CommandCopyContents, got.Command)
}

func TestPalette_BackspaceWidensFilter(t *testing.T) {
	p := New(nil)
	p.Open(domain.SearchResult{FilePath: "/docs/report.pdf"}, pdfActions())
	p.AppendFilter([]rune("revx")...)
	assert.Empty(t, p.Actions())
	assert.Contains(t, p.View(), "No matching actions")

	require.True(t, p.Backspace())

	assert.Equal(t, "rev", p.Filter())
	require.Len(t, p.Actions(), 1)
	assert.Equal(t, domain.CommandRevealInFolder, p.Actions()[0].Command)
	assert.Equal(t, 0, p.Index())

	p.Backspace()
	p.Backspace()
	p.Backspace()
	assert.False(t, p.Backspace())
	assert.Len(t, p.Actions(), 4)
}

func TestPalette_FilterResetOnReopen(t *testing.T) {
	p := New(nil)
	item := domain.SearchResult{FilePath: "/docs/report.pdf"}
	p.Open(item, pdfActions())
	p.AppendFilter('z')

	p.Close()
	p.Open(item, pdfActions())

	assert.Empty(t, p.Filter())
	assert.Len(t, p.Actions(), 4)
	assert.Contains(t, p.View(), "Type to filter")
}

func TestPalette_LookupIgnoresFilter(t *testing.T) {
	p := New(nil)
	p.Open(domain.SearchResult{FilePath: "/docs/report.pdf"}, pdfActions())
	p.AppendFilter([]rune("reveal")...)

	got, ok := p.Lookup("ctrl+p")

	require.True(t, ok)
	assert.Equal(t, domain.CommandCopyFilePath, got.Command)
}

func TestPalette_ViewShowsFilter(t *testing.T) {
	p := New(nil)
	p.SetWidth(60)
	p.Open(domain.SearchResult{FilePath: "/docs/report.pdf"}, pdfActions())
	p.AppendFilter([]rune("open")...)

	view := p.View()

	assert.Contains(t, view, "Filter: open")
	assert.Contains(t, view, "> Open in Viewer")
	assert.NotContains(t, view, "Copy File Path")
}
