// Package export turns a resume into downloadable files. Every export reads
// one normalized snapshot of the document; concurrent exports share nothing
// mutable.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abdellahzou/HiResume/internal/docx"
)

// Format is an output file type.
type Format string

// Supported formats.
const (
	FormatTeX  Format = "tex"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// ErrUnknownFormat is returned for formats outside the supported set.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists every format.
func Formats() []Format {
	return []Format{FormatTeX, FormatDOCX, FormatPDF, FormatHTML}
}

// ParseFormat accepts a format name or a file extension with its dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case FormatTeX, FormatDOCX, FormatPDF, FormatHTML:
		return f, nil
	case "latex":
		return FormatTeX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Filename returns the download name of the format.
func (f Format) Filename() string {
	return "resume." + string(f)
}

// MIME returns the media type of the format.
func (f Format) MIME() string {
	switch f {
	case FormatTeX:
		return "text/x-tex"
	case FormatDOCX:
		return docx.MIMEType
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}

// Artifact is one exported file.
type Artifact struct {
	Format   Format `json:"format"`
	Filename string `json:"filename"`
	MIME     string `json:"mime"`
	Data     []byte `json:"-"`
}

func newArtifact(f Format, data []byte) Artifact {
	return Artifact{Format: f, Filename: f.Filename(), MIME: f.MIME(), Data: data}
}
