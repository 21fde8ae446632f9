// Package imageinfo reads image headers for previews.
package imageinfo

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
)

// Ensure Inspector implements the interface.
var _ driven.ImageInspector = (*Inspector)(nil)

// Inspector decodes image headers only; pixel data is never decoded.
type Inspector struct{}

// New creates an inspector.
func New() *Inspector {
	return &Inspector{}
}

// Inspect returns the format and dimensions of data.
// SVG is recognised by its markup and reported without dimensions.
func (i *Inspector) Inspect(data []byte) (domain.ImageInfo, error) {
	if isSVG(data) {
		return domain.ImageInfo{Format: "svg", Bytes: len(data)}, nil
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.ImageInfo{}, fmt.Errorf("decode image header: %w", err)
	}
	return domain.ImageInfo{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Bytes:  len(data),
	}, nil
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(strings.ToLower(string(head)), "<svg")
}
