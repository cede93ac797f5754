// Package validation checks an exported LaTeX resume: it compiles the source
// with pdflatex, counts the pages of the result and reports layout warnings.
package validation

import "fmt"

// PageCountError is returned when neither the PDF parser nor pdfinfo can read a page count.
type PageCountError struct {
	Path  string
	Cause error
}

func (e *PageCountError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot count pages of %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("cannot count pages of %s", e.Path)
}

func (e *PageCountError) Unwrap() error {
	return e.Cause
}

// CompilationError is a pdflatex run that produced no usable PDF.
// LogOutput holds the tail of the engine log when one was written.
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// FileReadError wraps a failure to read a source or output file.
type FileReadError struct {
	Message string
	Cause   error
}

func (e *FileReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("file read error: %s: %v", e.Message, e.Cause)
	}
	return "file read error: " + e.Message
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}
