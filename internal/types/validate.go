package types

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func documentValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("template", func(fl validator.FieldLevel) bool {
			return TemplateID(fl.Field().String()).Valid()
		})
	})
	return validate
}

// Validate checks the document's structural invariants: a known template,
// skill levels within 1-5, ids on every entry and a well-formed email when one is given.
func (d *ResumeDocument) Validate() error {
	return documentValidator().Struct(d)
}
