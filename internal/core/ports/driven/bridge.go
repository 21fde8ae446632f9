package driven

import (
	"context"

	"github.com/custodia-labs/sift/internal/core/domain"
)

// NativeBridge is the host side of the application: OAuth sign-in,
// file access and handing files to the OS.
type NativeBridge interface {
	// StartOAuth runs the sign-in flow for service and returns an access token.
	StartOAuth(ctx context.Context, service domain.Integration) (string, error)

	// ListFiles lists files visible to token on service.
	ListFiles(ctx context.Context, service domain.Integration, token string) ([]domain.RemoteFile, error)

	// ReadFile returns the raw bytes of a local file.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// OpenViewer opens target (a path or URL) with the OS default application.
	OpenViewer(ctx context.Context, target string) error

	// Exit asks the host to shut the application down.
	Exit()

	// Done is closed once Exit has been called.
	Done() <-chan struct{}
}

// TextExtractor pulls plain text out of a binary document.
type TextExtractor interface {
	// Extract returns the text content of data.
	Extract(ctx context.Context, data []byte) (string, error)
}

// ImageInspector reads image headers.
type ImageInspector interface {
	// Inspect returns the format and dimensions of an encoded image.
	Inspect(data []byte) (domain.ImageInfo, error)
}
