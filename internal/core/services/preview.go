package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
	"github.com/custodia-labs/sift/internal/core/ports/driving"
)

// Ensure PreviewService implements the interface.
var _ driving.PreviewService = (*PreviewService)(nil)

// PreviewService builds previews from search results.
type PreviewService struct {
	bridge    driven.NativeBridge
	extractor driven.TextExtractor
	images    driven.ImageInspector
}

// NewPreviewService creates a preview service. Any dependency may be nil;
// the matching preview kind then reports an error instead of content.
func NewPreviewService(
	bridge driven.NativeBridge,
	extractor driven.TextExtractor,
	images driven.ImageInspector,
) *PreviewService {
	return &PreviewService{bridge: bridge, extractor: extractor, images: images}
}

// Load builds the preview for item.
func (s *PreviewService) Load(ctx context.Context, item domain.SearchResult) domain.Preview {
	p := domain.Preview{ResultID: item.ID, Kind: item.FileType()}

	switch p.Kind {
	case domain.FileTypeImage:
		info, err := s.loadImage(ctx, item)
		p.Image, p.Err = info, err
	case domain.FileTypePDF:
		p.Text, p.Err = s.loadPDF(ctx, item)
	case domain.FileTypeCode:
		p.Text = fence(item.Document, domain.Extension(item.FilePath))
	default:
		p.Text = item.Document
	}
	return p
}

func (s *PreviewService) loadImage(ctx context.Context, item domain.SearchResult) (*domain.ImageInfo, error) {
	if s.images == nil {
		return nil, fmt.Errorf("image preview not available")
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(item.Document))
	if err != nil || len(data) == 0 {
		if !item.IsLocal() || s.bridge == nil {
			return nil, fmt.Errorf("image payload: %w", domain.ErrInvalidInput)
		}
		if data, err = s.bridge.ReadFile(ctx, item.FilePath); err != nil {
			return nil, err
		}
	}

	info, err := s.images.Inspect(data)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *PreviewService) loadPDF(ctx context.Context, item domain.SearchResult) (string, error) {
	if !item.IsLocal() {
		return item.Document, nil
	}
	if s.bridge == nil || s.extractor == nil {
		return item.Document, nil
	}
	data, err := s.bridge.ReadFile(ctx, item.FilePath)
	if err != nil {
		return "", err
	}
	text, err := s.extractor.Extract(ctx, data)
	if err != nil {
		return "", err
	}
	return text, nil
}

// fence wraps source code in a markdown code block for rendering.
func fence(code, lang string) string {
	marker := "```"
	for strings.Contains(code, marker) {
		marker += "`"
	}
	return marker + lang + "\n" + strings.TrimRight(code, "\n") + "\n" + marker
}
