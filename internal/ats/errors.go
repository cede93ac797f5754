package ats

import "fmt"

// UserError is an analysis failure with a message fit for the person who uploaded the file.
type UserError interface {
	error
	UserMessage() string
}

// UnsupportedFileError is returned before extraction for file types other than pdf and docx
type UnsupportedFileError struct {
	FileType string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("ats error: unsupported file type %q", e.FileType)
}

// UserMessage implements UserError.
func (e *UnsupportedFileError) UserMessage() string {
	return "Unsupported file type. Please upload PDF or DOCX."
}

// EmptyTextError is returned when extraction yields no usable text
type EmptyTextError struct {
	FileType string
}

func (e *EmptyTextError) Error() string {
	return fmt.Sprintf("ats error: no text extracted from %s file", e.FileType)
}

// UserMessage implements UserError.
func (e *EmptyTextError) UserMessage() string {
	return "Could not extract text. If this is a PDF, ensure it is not an image scan."
}

// ExtractionError wraps a failure of the text extractor
type ExtractionError struct {
	FileType string
	Cause    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("ats error: failed to parse %s file: %v", e.FileType, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// UserMessage implements UserError.
func (e *ExtractionError) UserMessage() string {
	return "Error parsing file."
}
