package domain

// ImageInfo describes a decoded image header.
type ImageInfo struct {
	Format string
	Width  int
	Height int
	Bytes  int
}

// Preview is the rendered content for the focused result.
type Preview struct {
	// ResultID is the ID of the result this preview was built for.
	ResultID string

	// Kind is the classification used to build the preview.
	Kind FileType

	// Text is the displayable body for text, code and pdf files.
	Text string

	// Image is set for images whose header could be decoded.
	Image *ImageInfo

	// Err is set when the preview could not be built.
	Err error
}
