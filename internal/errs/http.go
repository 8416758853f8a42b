package errs

import "strings"

// FieldError represents a field-level validation error.
//
// Field errors are kept for server-side logs only. The client still receives
// a single `error` string, see Response.
type FieldError struct {
	// Field is the JSON key the error relates to (e.g. "order_id").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// Response is the only error shape a client ever sees:
//
//	{ "error": "Usuario no encontrado" }
type Response struct {
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error().
// Fields:
//   - Code: machine-friendly error code, logged but never rendered.
//   - Message: the client-facing message.
//   - Status: HTTP status code.
//   - Errors: per-field validation details (logged only).
type HTTPError struct {
	Code    string
	Message string
	Status  int

	// Errors holds field-level validation errors.
	Errors []FieldError
}

// Error returns the client-facing message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError with the same Code.
//
// Comparing by code (instead of by type only) lets callers write
// errors.Is(err, errs.ErrUserInactive) against the templates in types.go.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}

	return t.Code == "" || t.Code == e.Code
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
	}
}

// Response converts the error into the body written to the client.
func (e *HTTPError) Response() Response {
	return Response{Error: e.Message}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
