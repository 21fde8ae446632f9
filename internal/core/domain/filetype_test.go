package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		filename string
		expected FileType
	}{
		{"photo.png", FileTypeImage},
		{"/home/u/Pictures/IMG_0001.JPG", FileTypeImage},
		{"diagram.svg", FileTypeImage},
		{"scan.webp", FileTypeImage},
		{"main.go", FileTypeCode},
		{"app.tsx", FileTypeCode},
		{"script.PY", FileTypeCode},
		{"config.yaml", FileTypeCode},
		{"budget_2024.pdf", FileTypePDF},
		{"REPORT.PDF", FileTypePDF},
		{"notes.txt", FileTypeText},
		{"README.md", FileTypeText},
		{"Makefile", FileTypeText},
		{".bashrc", FileTypeText},
		{"trailingdot.", FileTypeText},
		{"", FileTypeText},
		{"https://example.com/files/report.pdf?dl=1", FileTypePDF},
		{"https://github.com/org/repo/blob/main/cmd/main.go", FileTypeCode},
		{`C:\Users\u\Desktop\logo.png`, FileTypeImage},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.filename))
		})
	}
}

func TestClassify_IsTotal(t *testing.T) {
	for _, name := range []string{"a", "a.b.c", "...", "/", "x.unknownext", "日本語.テキスト"} {
		assert.True(t, Classify(name).IsValid(), name)
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "pdf", Extension("/tmp/Budget.Report.PDF"))
	assert.Equal(t, "", Extension("/tmp/noext"))
	assert.Equal(t, "gz", Extension("archive.tar.gz"))
}
