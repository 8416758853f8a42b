// Package validation decodes request bodies and validates them.
//
// Struct tags are checked with the validator library; request types may add
// their own rules in Validate and fill defaults in Normalize. Field names in
// failures are the JSON keys the client sent.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/sistemasdevbackend/autocenter/internal/errs"
)

// Validatable is implemented by request payloads.
//
// Validate returns validator.ValidationErrors from Struct, an *errs.HTTPError
// when the payload needs a specific client message, or nil.
type Validatable interface {
	Validate() error
}

// Normalizer is implemented by payloads that fill defaults once valid.
type Normalizer interface {
	Normalize()
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
	})
	return validate
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// Struct checks the validate tags of v.
func Struct(v any) error {
	return instance().Struct(v)
}

// BindAndValidate decodes the JSON body into payload, validates it and
// applies defaults.
//
// The body is decoded whatever the Content-Type. A body that is not valid
// JSON for payload is an unexpected error (500) carrying the decoder message;
// a failed validation is a 400.
func BindAndValidate(c echo.Context, payload Validatable) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errs.NewUnexpectedError(err.Error())
	}

	if err := json.Unmarshal(body, payload); err != nil {
		return errs.NewUnexpectedError(err.Error())
	}

	if err := payload.Validate(); err != nil {
		return toHTTPError(err)
	}

	if normalizer, ok := payload.(Normalizer); ok {
		normalizer.Normalize()
	}

	return nil
}

func toHTTPError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs.ValidationError(err)
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldError := errs.FieldError{
			Field: fieldErr.Field(),
			Error: describe(fieldErr),
		}
		fieldErrors = append(fieldErrors, fieldError)
		messages = append(messages, fieldError.Field+" "+fieldError.Error)
	}

	return errs.NewValidationError(strings.Join(messages, "; "), fieldErrors)
}

func describe(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "email":
		return "must be a valid email address"
	default:
		if err.Param() != "" {
			return fmt.Sprintf("failed %s:%s", err.Tag(), err.Param())
		}
		return fmt.Sprintf("failed %s", err.Tag())
	}
}
