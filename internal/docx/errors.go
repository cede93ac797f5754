// Package docx compiles resumes to WordprocessingML (.docx) packages, either as a
// single flowed column or as a two-column sidebar table.
package docx

import "fmt"

// CompileError represents a failure to assemble the document package
type CompileError struct {
	Part    string
	Message string
	Cause   error
}

func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("docx error: %s (%s): %v", e.Message, e.Part, e.Cause)
	}
	return fmt.Sprintf("docx error: %s (%s)", e.Message, e.Part)
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}
