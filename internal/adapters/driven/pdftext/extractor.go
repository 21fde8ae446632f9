// Package pdftext extracts text from PDF files with the poppler
// pdftotext tool.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

const toolName = "pdftotext"

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor shells out to pdftotext.
type Extractor struct {
	runner  CommandRunner
	tempDir string
}

// New creates an extractor using the real pdftotext binary.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates an extractor with an injected runner.
func NewWithRunner(runner CommandRunner, tempDir string) *Extractor {
	return &Extractor{runner: runner, tempDir: tempDir}
}

// CheckAvailable reports whether pdftotext is on PATH.
func CheckAvailable() error {
	if _, err := exec.LookPath(toolName); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns how to install pdftotext.
func InstallInstructions() string {
	return "pdftotext is part of poppler: brew install poppler (macOS) or apt install poppler-utils (Debian/Ubuntu)"
}

// Extract returns the text layer of a PDF.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty pdf", domain.ErrInvalidInput)
	}

	f, err := os.CreateTemp(e.tempDir, "sift-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp pdf: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp pdf: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp pdf: %w", err)
	}

	out, err := e.runner.Run(ctx, toolName, "-layout", "-enc", "UTF-8", f.Name(), "-")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrPDFToolNotFound
		}
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return strings.TrimSpace(strings.ReplaceAll(string(out), "\f", "\n")), nil
}
