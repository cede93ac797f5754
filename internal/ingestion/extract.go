// Package ingestion turns uploaded documents into plain text. Each supported
// file type has an Extractor; the result is cleaned before analysis.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for file types without an extractor
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrFileTooLarge is returned when an upload exceeds the reader limit
	ErrFileTooLarge = errors.New("file too large")
)

// MaxFileSize bounds the bytes read from one upload.
const MaxFileSize = 10 << 20

// Extractor pulls raw text out of one document format.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(ctx context.Context, data []byte) (string, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

// FileType returns the lower-cased extension of name without its dot.
func FileType(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// Registry maps file types to extractors.
type Registry map[string]Extractor

// DefaultRegistry returns the extractors for uploaded resumes: pdf and docx.
func DefaultRegistry() Registry {
	return Registry{
		"pdf":  PDFExtractor{},
		"docx": DOCXExtractor{},
	}
}

// WithHTML returns a copy of r that also reads html documents.
func (r Registry) WithHTML() Registry {
	out := make(Registry, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	out["html"] = HTMLExtractor{}
	return out
}

// Supports reports whether r has an extractor for name's file type.
func (r Registry) Supports(name string) bool {
	_, ok := r[FileType(name)]
	return ok
}

// Types lists the supported file types.
func (r Registry) Types() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	return out
}

// Extract picks the extractor for name and returns the cleaned text.
func (r Registry) Extract(ctx context.Context, name string, data []byte) (string, error) {
	ext := FileType(name)
	x, ok := r[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := x.Extract(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s text: %w", ext, err)
	}
	return CleanText(raw), nil
}

// ReadFile reads a document from disk, refusing files over MaxFileSize.
func ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, info.Size())
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}

// IngestFromFile reads a document from disk and returns its cleaned text with metadata
func (r Registry) IngestFromFile(ctx context.Context, path string) (string, *Metadata, error) {
	if !r.Supports(path) {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, FileType(path))
	}
	content, err := ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	text, err := r.Extract(ctx, filepath.Base(path), content)
	if err != nil {
		return "", nil, err
	}
	return text, NewMetadata(text, filepath.Base(path)), nil
}
