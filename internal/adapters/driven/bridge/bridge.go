// Package bridge implements driven.NativeBridge: the host side of Sift that
// signs in to remote services, lists and reads files, and hands files to the
// operating system.
package bridge

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/custodia-labs/sift/internal/adapters/driving/oauth"
	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
	"github.com/custodia-labs/sift/internal/logger"
)

// Ensure Bridge implements the interface.
var _ driven.NativeBridge = (*Bridge)(nil)

const (
	// MaxReadBytes caps ReadFile.
	MaxReadBytes = 64 << 20

	defaultAuthTimeout = 5 * time.Minute
	defaultListTimeout = 30 * time.Second
)

// Config configures a Bridge.
type Config struct {
	// CallbackPort is the base port for OAuth redirects. Each service listens
	// on a fixed offset from it so redirect URIs stay stable.
	CallbackPort int

	// Config supplies client credentials when the environment does not.
	// Optional.
	Config driven.ConfigStore

	// AuthTimeout bounds the whole sign-in flow (default: 5m).
	AuthTimeout time.Duration

	// ListTimeout bounds a single ListFiles call (default: 30s).
	ListTimeout time.Duration
}

// Bridge is the default driven.NativeBridge.
type Bridge struct {
	basePort    int
	config      driven.ConfigStore
	authTimeout time.Duration
	listTimeout time.Duration
	getenv      func(string) string
	open        func(string) error
	providers   map[domain.Integration]provider

	github *githubLister
	drive  *driveLister
	notion *notionLister

	done     chan struct{}
	exitOnce sync.Once
}

// New creates a Bridge.
func New(cfg Config) *Bridge {
	if cfg.CallbackPort <= 0 {
		cfg.CallbackPort = domain.DefaultCallbackPort
	}
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = defaultAuthTimeout
	}
	if cfg.ListTimeout <= 0 {
		cfg.ListTimeout = defaultListTimeout
	}
	return &Bridge{
		basePort:    cfg.CallbackPort,
		config:      cfg.Config,
		authTimeout: cfg.AuthTimeout,
		listTimeout: cfg.ListTimeout,
		getenv:      os.Getenv,
		open:        oauth.OpenBrowser,
		providers:   defaultProviders(),
		github:      newGitHubLister(),
		drive:       newDriveLister(),
		notion:      newNotionLister(),
		done:        make(chan struct{}),
	}
}

// ListFiles lists files visible to token on service.
func (b *Bridge) ListFiles(ctx context.Context, service domain.Integration, token string) ([]domain.RemoteFile, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotAuthenticated, service)
	}

	ctx, cancel := context.WithTimeout(ctx, b.listTimeout)
	defer cancel()

	var (
		files []domain.RemoteFile
		err   error
	)
	switch service {
	case domain.IntegrationGitHub:
		files, err = b.github.list(ctx, token)
	case domain.IntegrationGoogle:
		files, err = b.drive.list(ctx, token)
	case domain.IntegrationNotion:
		files, err = b.notion.list(ctx, token)
	default:
		return nil, fmt.Errorf("%w: listing files on %s", domain.ErrUnsupportedIntegration, service.Description())
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("bridge: listed %d files from %s", len(files), service)
	return files, nil
}

// ReadFile returns the raw bytes of a local file.
func (b *Bridge) ReadFile(_ context.Context, path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	if info.Size() > MaxReadBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes", domain.ErrFileTooLarge, path, info.Size())
	}
	return os.ReadFile(path)
}

// OpenViewer opens target (a path or URL) with the OS default application.
func (b *Bridge) OpenViewer(_ context.Context, target string) error {
	if target == "" {
		return fmt.Errorf("%w: empty target", domain.ErrInvalidInput)
	}
	logger.Debug("bridge: opening %s", target)
	return b.open(target)
}

// Exit asks the host to shut the application down. Safe to call repeatedly.
func (b *Bridge) Exit() {
	b.exitOnce.Do(func() { close(b.done) })
}

// Done is closed once Exit has been called.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}
