// Package rendering compiles resumes to LaTeX source, one template family per group of visual templates.
package rendering

import (
	"fmt"

	"github.com/abdellahzou/HiResume/internal/types"
)

// TemplateError is a family template that could not be read, parsed or executed.
// Template is the template name or the path of a custom file.
type TemplateError struct {
	Template string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s (%s): %v", e.Message, e.Template, e.Cause)
	}
	return fmt.Sprintf("template error: %s (%s)", e.Message, e.Template)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError is a document that could not be turned into template data.
type RenderError struct {
	TemplateID types.TemplateID
	Message    string
	Cause      error
}

func (e *RenderError) Error() string {
	msg := "latex " + string(e.TemplateID) + ": " + e.Message
	if e.TemplateID == "" {
		msg = "latex: " + e.Message
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
