package pdftext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.DocumentSource = (*PDFSource)(nil)
	_ driven.DocumentSource = (*FileSource)(nil)
)

// PDFSource extracts plain text from a bare-act PDF. Extraction is lossy
// (columns and tables come out flattened), which is fine: the reference
// builder only needs the section headings to be locatable.
type PDFSource struct {
	path string
}

// NewPDFSource creates a source for a PDF on disk
func NewPDFSource(path string) *PDFSource {
	return &PDFSource{path: path}
}

// Name identifies the source file
func (s *PDFSource) Name() string {
	return filepath.Base(s.path)
}

// Text extracts the text of every page in order
func (s *PDFSource) Text(ctx context.Context) (string, error) {
	f, reader, err := pdf.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", s.path, err)
	}
	defer f.Close()

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract page %d of %s: %w", pageNum, s.path, err)
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// FileSource reads an already-extracted plain text document.
type FileSource struct {
	path string
}

// NewFileSource creates a source for a text file on disk
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name identifies the source file
func (s *FileSource) Name() string {
	return filepath.Base(s.path)
}

// Text reads the whole file
func (s *FileSource) Text(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return string(data), nil
}

// Open picks the source type from the file extension
func Open(path string) driven.DocumentSource {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewPDFSource(path)
	}
	return NewFileSource(path)
}
