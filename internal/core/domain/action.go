package domain

// Command names a palette action. The set is closed; dispatch of a name
// outside it is a logged no-op.
type Command string

// Palette commands.
const (
	CommandCopyContents   Command = "copyContents"
	CommandCopyFilePath   Command = "copyFilePath"
	CommandViewImage      Command = "viewImage"
	CommandOpenInViewer   Command = "openInViewer"
	CommandOpenFile       Command = "openFile"
	CommandRevealInFolder Command = "revealInFolder"
)

// IsValid returns true if the command is recognised.
func (c Command) IsValid() bool {
	switch c {
	case CommandCopyContents, CommandCopyFilePath, CommandViewImage,
		CommandOpenInViewer, CommandOpenFile, CommandRevealInFolder:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c Command) String() string {
	return string(c)
}

// ActionDescriptor is one entry of the command palette.
// The command name doubles as the entry's identifier.
type ActionDescriptor struct {
	Command  Command
	Label    string
	Shortcut string
}

// ID returns the identifier of the action.
func (a ActionDescriptor) ID() string {
	return string(a.Command)
}
