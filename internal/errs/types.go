package errs

import (
	"net/http"
)

// Client-facing messages of the login flow. They are part of the public
// contract: every identity or credential failure collapses into one of them.
const (
	MsgCredentialsRequired = "Username and password are required"
	MsgUserNotFound        = "Usuario no encontrado"
	MsgUserInactive        = "Usuario inactivo"
	MsgInvalidCredentials  = "Credenciales incorrectas"
)

// Machine-readable codes for the error taxonomy.
const (
	CodeValidation         = "VALIDATION_FAILED"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUserInactive       = "USER_INACTIVE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeStorage            = "STORAGE_REJECTED"
	CodeUnexpected         = "UNEXPECTED"
)

// Templates usable as errors.Is targets.
var (
	ErrValidation         = &HTTPError{Code: CodeValidation}
	ErrUserNotFound       = &HTTPError{Code: CodeUserNotFound}
	ErrUserInactive       = &HTTPError{Code: CodeUserInactive}
	ErrInvalidCredentials = &HTTPError{Code: CodeInvalidCredentials}
	ErrStorage            = &HTTPError{Code: CodeStorage}
	ErrUnexpected         = &HTTPError{Code: CodeUnexpected}
)

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
//
// code is optional; when nil the code is derived from the status text.
func NewUnauthorizedError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnauthorized))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewInternalServerError creates a 500 with the generic status text as message.
// Used when the underlying failure must not reach the client (panics).
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// NewValidationError is a 400 for a missing or malformed required field.
func NewValidationError(message string, fieldErrors []FieldError) *HTTPError {
	code := CodeValidation
	return NewBadRequestError(message, &code, fieldErrors)
}

// NewUserNotFoundError is the 401 returned when a username cannot be resolved,
// whatever the reason (lookup failure or no row).
func NewUserNotFoundError() *HTTPError {
	code := CodeUserNotFound
	return NewUnauthorizedError(MsgUserNotFound, &code)
}

// NewInactiveAccountError is the 401 returned for a resolved but inactive profile.
func NewInactiveAccountError() *HTTPError {
	code := CodeUserInactive
	return NewUnauthorizedError(MsgUserInactive, &code)
}

// NewInvalidCredentialsError is the 401 returned for any authentication failure.
func NewInvalidCredentialsError() *HTTPError {
	code := CodeInvalidCredentials
	return NewUnauthorizedError(MsgInvalidCredentials, &code)
}

// NewStorageError is a 400 carrying the storage layer's message verbatim.
// code may refine the default STORAGE_REJECTED (e.g. ORDER_INVOICE_ALREADY_EXISTS).
func NewStorageError(message string, code *string) *HTTPError {
	formattedCode := CodeStorage
	if code != nil {
		formattedCode = *code
	}

	return NewBadRequestError(message, &formattedCode, nil)
}

// NewUnexpectedError is a 500 whose message is the failure's own message,
// e.g. a JSON syntax error in the request body.
func NewUnexpectedError(message string) *HTTPError {
	return &HTTPError{
		Code:    CodeUnexpected,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	return NewValidationError("Validation failed: "+err.Error(), nil)
}
