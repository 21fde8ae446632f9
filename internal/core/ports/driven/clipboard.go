package driven

// Clipboard writes to the system clipboard.
type Clipboard interface {
	// WriteText replaces the clipboard contents with text, byte for byte.
	WriteText(text string) error
}
