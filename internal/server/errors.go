package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/abdellahzou/HiResume/internal/ats"
	"github.com/abdellahzou/HiResume/internal/autofit"
	"github.com/abdellahzou/HiResume/internal/db"
	"github.com/abdellahzou/HiResume/internal/draft"
	"github.com/abdellahzou/HiResume/internal/export"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/schemas"
	"github.com/abdellahzou/HiResume/internal/server/middleware"
	"github.com/abdellahzou/HiResume/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a route whose backing service is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured on this server", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		valErr    *ErrValidation
		schemaErr *schemas.ValidationError
		fieldErrs validator.ValidationErrors
		userErr   ats.UserError
		unavail   *ErrUnavailable
	)
	switch {
	case errors.As(err, &valErr), errors.As(err, &schemaErr), errors.As(err, &fieldErrs),
		errors.Is(err, types.ErrUnknownTemplate), errors.Is(err, i18n.ErrUnknownLocale),
		errors.As(err, &userErr), errors.Is(err, draft.ErrInvalidPatch):
		return http.StatusBadRequest
	case errors.Is(err, middleware.ErrNoUser):
		return http.StatusUnauthorized
	case errors.Is(err, export.ErrUnknownFormat), errors.Is(err, db.ErrNotFound),
		errors.Is(err, draft.ErrUnknownCollection), errors.Is(err, draft.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrRevisionConflict), errors.Is(err, autofit.ErrStale), errors.Is(err, ats.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, export.ErrNoPrinter), errors.As(err, &unavail):
		return http.StatusNotImplemented
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
