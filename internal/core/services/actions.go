package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
	"github.com/custodia-labs/sift/internal/core/ports/driving"
	"github.com/custodia-labs/sift/internal/logger"
)

// Ensure ActionDispatcher implements the interface.
var _ driving.ActionService = (*ActionDispatcher)(nil)

// Palette entries.
var (
	actionViewImage = domain.ActionDescriptor{
		Command: domain.CommandViewImage, Label: "View Image", Shortcut: "ctrl+g",
	}
	actionOpenInViewer = domain.ActionDescriptor{
		Command: domain.CommandOpenInViewer, Label: "Open in Viewer", Shortcut: "ctrl+o",
	}
	actionOpenFile = domain.ActionDescriptor{
		Command: domain.CommandOpenFile, Label: "Open File", Shortcut: "ctrl+o",
	}
	actionRevealInFolder = domain.ActionDescriptor{
		Command: domain.CommandRevealInFolder, Label: "Reveal in Folder", Shortcut: "ctrl+r",
	}
	actionCopyContents = domain.ActionDescriptor{
		Command: domain.CommandCopyContents, Label: "Copy Contents", Shortcut: "ctrl+y",
	}
	actionCopyFilePath = domain.ActionDescriptor{
		Command: domain.CommandCopyFilePath, Label: "Copy File Path", Shortcut: "ctrl+p",
	}
)

// ActionDispatcher maps file types to palette actions and runs them.
type ActionDispatcher struct {
	clipboard driven.Clipboard
	bridge    driven.NativeBridge
	tempDir   string

	mu    sync.Mutex
	temps []string
}

// NewActionDispatcher creates a dispatcher. Temporary copies handed to the
// viewer are written to tempDir, or the OS temp dir when empty, and
// removed by Cleanup.
func NewActionDispatcher(clipboard driven.Clipboard, bridge driven.NativeBridge, tempDir string) *ActionDispatcher {
	return &ActionDispatcher{clipboard: clipboard, bridge: bridge, tempDir: tempDir}
}

// ActionsFor returns the palette entries for ft: type-specific actions
// first, then the ones every file gets.
func (d *ActionDispatcher) ActionsFor(ft domain.FileType) []domain.ActionDescriptor {
	var specific []domain.ActionDescriptor
	switch ft {
	case domain.FileTypeImage:
		specific = []domain.ActionDescriptor{actionViewImage, actionRevealInFolder}
	case domain.FileTypePDF:
		specific = []domain.ActionDescriptor{actionOpenInViewer, actionRevealInFolder}
	case domain.FileTypeCode:
		specific = []domain.ActionDescriptor{actionOpenFile, actionRevealInFolder}
	case domain.FileTypeText:
		specific = nil
	default:
		logger.Warn("actions: unclassified file type %q", ft)
	}
	return append(specific, actionCopyContents, actionCopyFilePath)
}

// Execute runs cmd against item. Unknown commands are logged and ignored.
func (d *ActionDispatcher) Execute(ctx context.Context, cmd domain.Command, item domain.SearchResult) error {
	logger.Debug("actions: %s on %s", cmd, item.FilePath)

	switch cmd {
	case domain.CommandCopyContents:
		return d.copy(item.Document)
	case domain.CommandCopyFilePath:
		return d.copy(item.FilePath)
	case domain.CommandViewImage:
		return d.viewImage(ctx, item)
	case domain.CommandOpenInViewer:
		return d.openInViewer(ctx, item)
	case domain.CommandRevealInFolder:
		if !item.IsLocal() {
			return domain.ErrNotLocal
		}
		return d.open(ctx, filepath.Dir(item.FilePath))
	case domain.CommandOpenFile:
		// Editor integration is not wired yet; the action only records intent.
		logger.Info("actions: open file requested for %s", item.FilePath)
		return nil
	default:
		logger.Warn("actions: %v: %q", domain.ErrUnknownCommand, cmd)
		return nil
	}
}

func (d *ActionDispatcher) copy(text string) error {
	if d.clipboard == nil {
		return fmt.Errorf("clipboard not available")
	}
	if err := d.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

func (d *ActionDispatcher) open(ctx context.Context, target string) error {
	if d.bridge == nil {
		return fmt.Errorf("viewer not available")
	}
	if err := d.bridge.OpenViewer(ctx, target); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}

// openInViewer hands the viewer a temp copy of a local file so the
// original is never locked by it. Remote files are opened by URL.
func (d *ActionDispatcher) openInViewer(ctx context.Context, item domain.SearchResult) error {
	if !item.IsLocal() {
		return d.open(ctx, item.FilePath)
	}
	data, err := d.read(ctx, item.FilePath)
	if err != nil {
		return err
	}
	return d.openCopy(ctx, item.FilePath, data)
}

// viewImage opens the base64 payload returned with the result. Without a
// payload local images are read through the bridge and remote ones are
// opened by URL.
func (d *ActionDispatcher) viewImage(ctx context.Context, item domain.SearchResult) error {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(item.Document))
	if err == nil && len(data) > 0 {
		return d.openCopy(ctx, item.FilePath, data)
	}
	if !item.IsLocal() {
		return d.open(ctx, item.FilePath)
	}
	data, err = d.read(ctx, item.FilePath)
	if err != nil {
		return err
	}
	return d.openCopy(ctx, item.FilePath, data)
}

func (d *ActionDispatcher) read(ctx context.Context, path string) ([]byte, error) {
	if d.bridge == nil {
		return nil, fmt.Errorf("viewer not available")
	}
	data, err := d.bridge.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// openCopy writes data to a temp file named after source and opens it.
// The file is closed before the viewer starts.
func (d *ActionDispatcher) openCopy(ctx context.Context, source string, data []byte) error {
	pattern := "sift-*"
	if ext := domain.Extension(source); ext != "" {
		pattern += "." + ext
	}
	f, err := os.CreateTemp(d.tempDir, pattern)
	if err != nil {
		return fmt.Errorf("create temp copy: %w", err)
	}
	d.track(f.Name())

	_, werr := f.Write(data)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("write temp copy: %w", werr)
	}
	return d.open(ctx, f.Name())
}

func (d *ActionDispatcher) track(path string) {
	d.mu.Lock()
	d.temps = append(d.temps, path)
	d.mu.Unlock()
}

// TempFiles returns the temp copies not yet cleaned up.
func (d *ActionDispatcher) TempFiles() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.temps...)
}

// Cleanup removes every temp copy handed to the viewer. Files already gone
// are skipped.
func (d *ActionDispatcher) Cleanup() error {
	d.mu.Lock()
	temps := d.temps
	d.temps = nil
	d.mu.Unlock()

	var errs []error
	for _, path := range temps {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(temps) > 0 {
		logger.Debug("actions: removed %d temp copies", len(temps)-len(errs))
	}
	return errors.Join(errs...)
}
