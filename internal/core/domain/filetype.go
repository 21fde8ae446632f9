package domain

import "strings"

// FileType is the closed set of classifications used to pick a preview
// renderer and a palette action set.
type FileType string

// Supported file types.
const (
	FileTypeText  FileType = "text"
	FileTypeImage FileType = "image"
	FileTypeCode  FileType = "code"
	FileTypePDF   FileType = "pdf"
)

var imageExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "bmp": true,
	"webp": true, "svg": true, "tiff": true, "tif": true, "ico": true, "heic": true,
}

var codeExtensions = map[string]bool{
	"go": true, "py": true, "js": true, "jsx": true, "ts": true, "tsx": true,
	"rs": true, "java": true, "c": true, "h": true, "cpp": true, "hpp": true,
	"cc": true, "cs": true, "rb": true, "php": true, "swift": true, "kt": true,
	"kts": true, "scala": true, "sh": true, "bash": true, "zsh": true, "sql": true,
	"html": true, "css": true, "scss": true, "json": true, "yaml": true, "yml": true,
	"toml": true, "xml": true, "lua": true, "r": true, "m": true, "mm": true,
	"dart": true, "vue": true, "svelte": true,
}

// Classify maps a file name or path to its FileType.
// It is total: anything unrecognised, including a name with no
// extension, is text.
func Classify(filename string) FileType {
	ext := Extension(filename)
	switch {
	case ext == "pdf":
		return FileTypePDF
	case imageExtensions[ext]:
		return FileTypeImage
	case codeExtensions[ext]:
		return FileTypeCode
	default:
		return FileTypeText
	}
}

// Extension returns the lower-cased extension of the final path element
// without the dot. URL queries and fragments are ignored.
func Extension(filename string) string {
	name := baseName(filename)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 || dot == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[dot+1:])
}

// IsValid returns true if the file type is recognised.
func (t FileType) IsValid() bool {
	switch t {
	case FileTypeText, FileTypeImage, FileTypeCode, FileTypePDF:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FileType) String() string {
	return string(t)
}
