// Package clipboard implements driven.Clipboard with the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/custodia-labs/sift/internal/core/ports/driven"
)

// Ensure Clipboard implements the interface.
var _ driven.Clipboard = (*Clipboard)(nil)

// Clipboard writes through atotto/clipboard, which shells out to
// pbcopy, xclip, xsel, wl-copy or the Windows API.
type Clipboard struct {
	write func(string) error
}

// New returns the system clipboard.
func New() *Clipboard {
	return &Clipboard{write: clipboard.WriteAll}
}

// Available reports whether a clipboard utility was found.
func Available() bool {
	return !clipboard.Unsupported
}

// WriteText replaces the clipboard contents with text.
func (c *Clipboard) WriteText(text string) error {
	return c.write(text)
}
