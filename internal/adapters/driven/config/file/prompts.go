package file

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
	"github.com/custodia-labs/sift/internal/logger"
)

var _ driven.PromptStore = (*PromptStore)(nil)

const (
	promptExt    = ".txt"
	promptReadme = "README.md"
)

//go:embed defaults
var defaults embed.FS

// PromptStore serves the system prompts for the LLM features. A file in
// the prompt directory overrides the built-in prompt of the same name; an
// empty or missing file falls back to it.
type PromptStore struct {
	dir string

	seedOnce sync.Once
	seedErr  error

	mu    sync.RWMutex
	cache map[string]string
}

// NewPromptStore returns a store over dir, ~/.sift/prompts when empty.
// Nothing is written until the first Load or Seed.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		root, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(root, "prompts")
	}
	return &PromptStore{dir: dir, cache: make(map[string]string)}, nil
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

// Seed creates the directory and copies in any built-in prompt the user
// has not already customised. It runs once; later calls return the first
// result.
func (s *PromptStore) Seed() error {
	s.seedOnce.Do(func() {
		s.seedErr = s.seed()
	})
	return s.seedErr
}

func (s *PromptStore) seed() error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create prompt directory: %w", err)
	}
	entries, err := defaults.ReadDir("defaults")
	if err != nil {
		return err
	}
	for _, e := range entries {
		target := filepath.Join(s.dir, e.Name())
		if _, err := os.Stat(target); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		data, err := defaults.ReadFile(path.Join("defaults", e.Name()))
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o600); err != nil {
			return fmt.Errorf("write %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Load returns the prompt called name. Unknown names are ErrNotFound.
func (s *PromptStore) Load(name string) (string, error) {
	builtin, err := builtinPrompt(name)
	if err != nil {
		return "", err
	}
	if err := s.Seed(); err != nil {
		logger.Debug("prompts: %v; using built-in %s", err, name)
		return builtin, nil
	}

	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	prompt = builtin
	data, err := os.ReadFile(filepath.Join(s.dir, name+promptExt))
	switch {
	case err == nil && strings.TrimSpace(string(data)) != "":
		prompt = strings.TrimSpace(string(data))
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		logger.Warn("prompts: reading %s: %v", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()
	return prompt, nil
}

// Reload drops cached prompts so the next Load reads the files again.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	clear(s.cache)
	s.mu.Unlock()
}

func builtinPrompt(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
	}
	data, err := defaults.ReadFile(path.Join("defaults", name+promptExt))
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
	}
	return strings.TrimSpace(string(data)), nil
}
