// Package preview renders the preview pane for the focused result.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/sift/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/logger"
)

// DefaultStyle is the glamour style used for markdown and code.
const DefaultStyle = "dark"

// Pane shows the preview, summary and highlighted text for one result.
type Pane struct {
	styles      *styles.Styles
	mdStyle     string
	renderer    *glamour.TermRenderer
	rendererFor int

	item        *domain.SearchResult
	preview     *domain.Preview
	summary     string
	highlighted string
	rendered    string

	width  int
	height int
}

// New creates an empty pane. mdStyle names a glamour style; empty means
// DefaultStyle.
func New(s *styles.Styles, mdStyle string) *Pane {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if mdStyle == "" {
		mdStyle = DefaultStyle
	}
	return &Pane{styles: s, mdStyle: mdStyle, width: 60, height: 20}
}

// SetItem shows item as loading and drops everything loaded for the
// previous one.
func (p *Pane) SetItem(item domain.SearchResult) {
	p.item = &item
	p.preview = nil
	p.summary = ""
	p.highlighted = ""
	p.rendered = ""
}

// Clear empties the pane.
func (p *Pane) Clear() {
	p.item = nil
	p.preview = nil
	p.summary = ""
	p.highlighted = ""
	p.rendered = ""
}

// Item returns the result being previewed.
func (p *Pane) Item() (domain.SearchResult, bool) {
	if p.item == nil {
		return domain.SearchResult{}, false
	}
	return *p.item, true
}

// SetPreview sets the loaded preview.
func (p *Pane) SetPreview(pv domain.Preview) {
	p.preview = &pv
	p.rendered = ""
}

// Preview returns the loaded preview.
func (p *Pane) Preview() (domain.Preview, bool) {
	if p.preview == nil {
		return domain.Preview{}, false
	}
	return *p.preview, true
}

// SetSummary sets the one-sentence summary.
func (p *Pane) SetSummary(summary string) {
	p.summary = summary
}

// Summary returns the summary.
func (p *Pane) Summary() string {
	return p.summary
}

// SetHighlight replaces the plain preview text with text whose relevant
// phrases are marked.
func (p *Pane) SetHighlight(text string) {
	p.highlighted = text
	p.rendered = ""
}

// SetDimensions sets the pane size.
func (p *Pane) SetDimensions(width, height int) {
	if width != p.width {
		p.rendered = ""
	}
	p.width = width
	p.height = height
}

// View renders the pane.
func (p *Pane) View() string {
	if p.item == nil {
		return p.styles.Muted.Render("Select a file to preview")
	}

	lines := []string{
		p.styles.Title.Render(p.item.Name()),
		p.styles.Muted.Render(p.item.FilePath),
	}
	if p.summary != "" {
		lines = append(lines, "", p.styles.Summary.Render("Summary: ")+p.styles.Normal.Render(p.summary))
	}
	lines = append(lines, "")

	body := p.body()
	budget := p.height - len(lines)
	if budget < 1 {
		budget = 1
	}
	bodyLines := strings.Split(body, "\n")
	if len(bodyLines) > budget {
		bodyLines = append(bodyLines[:budget-1], p.styles.Muted.Render("..."))
	}

	return strings.Join(append(lines, bodyLines...), "\n")
}

func (p *Pane) body() string {
	if p.preview == nil {
		return p.styles.Muted.Render("Loading preview...")
	}
	if p.preview.Err != nil {
		return p.styles.Error.Render("Preview unavailable: " + p.preview.Err.Error())
	}
	if p.rendered != "" {
		return p.rendered
	}

	switch p.preview.Kind {
	case domain.FileTypeImage:
		p.rendered = p.imageInfo()
	case domain.FileTypeCode:
		p.rendered = p.markdown(p.preview.Text)
	case domain.FileTypeText:
		if isMarkdown(p.item.FilePath) && p.highlighted == "" {
			p.rendered = p.markdown(p.preview.Text)
		} else {
			p.rendered = p.plain()
		}
	default:
		p.rendered = p.plain()
	}
	return p.rendered
}

func (p *Pane) plain() string {
	text := p.preview.Text
	if p.highlighted != "" {
		text = p.highlighted
	}
	if strings.TrimSpace(text) == "" {
		return p.styles.Muted.Render("(empty)")
	}
	return lipgloss.NewStyle().Width(p.width).Render(text)
}

func (p *Pane) imageInfo() string {
	img := p.preview.Image
	if img == nil {
		return p.styles.Muted.Render("No image information")
	}
	return strings.Join([]string{
		fmt.Sprintf("Format:     %s", strings.ToUpper(img.Format)),
		fmt.Sprintf("Dimensions: %d x %d", img.Width, img.Height),
		fmt.Sprintf("Size:       %s", humanize.Bytes(uint64(img.Bytes))),
		"",
		p.styles.Muted.Render("Use ctrl+k to view the image."),
	}, "\n")
}

// markdown renders md with glamour, falling back to plain text.
func (p *Pane) markdown(md string) string {
	if p.renderer == nil || p.rendererFor != p.width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(p.mdStyle),
			glamour.WithWordWrap(p.width),
		)
		if err != nil {
			logger.Warn("preview: markdown renderer: %v", err)
			return p.plain()
		}
		p.renderer, p.rendererFor = r, p.width
	}
	out, err := p.renderer.Render(md)
	if err != nil {
		logger.Debug("preview: render markdown: %v", err)
		return p.plain()
	}
	return strings.Trim(out, "\n")
}

func isMarkdown(path string) bool {
	switch domain.Extension(path) {
	case "md", "markdown", "mdx":
		return true
	default:
		return false
	}
}
