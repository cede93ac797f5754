// Package schemas validates resume documents and ATS results against the
// JSON Schemas embedded in the binary.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/abdellahzou/HiResume/internal/types"
)

var (
	//go:embed resume.schema.json
	resumeSchema string
	//go:embed ats_result.schema.json
	atsResultSchema string
)

// Schema names.
const (
	Resume    = "resume"
	AtsResult = "ats_result"
)

var sources = map[string]string{
	Resume:    resumeSchema,
	AtsResult: atsResultSchema,
}

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Source returns the raw text of a named schema.
func Source(name string) (string, bool) {
	s, ok := sources[name]
	return s, ok
}

func schema(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()
	if s, ok := compiled[name]; ok {
		return s, nil
	}
	src, ok := sources[name]
	if !ok {
		return nil, &SchemaLoadError{Name: name, Message: "unknown schema"}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "invalid schema", Cause: err}
	}
	compiled[name] = s
	return s, nil
}

// Validate checks a JSON document against the named schema.
func Validate(name string, data []byte) error {
	s, err := schema(name)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "invalid JSON"}}}
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// DecodeResume validates data against the resume schema, decodes it and
// runs the struct-level checks of types.ResumeDocument.
func DecodeResume(data []byte) (types.ResumeDocument, error) {
	if err := Validate(Resume, data); err != nil {
		return types.ResumeDocument{}, err
	}
	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to decode resume: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return types.ResumeDocument{}, err
	}
	return doc, nil
}

// LoadResume reads and decodes a resume JSON file.
func LoadResume(path string) (types.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to read resume file: %w", err)
	}
	return DecodeResume(data)
}
