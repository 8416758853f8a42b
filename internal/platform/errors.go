package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// CodeNoSingleRow is the data API code for "exactly one row was requested but
// zero or several matched".
const CodeNoSingleRow = "PGRST116"

// ErrNoSession is returned when a sign-in succeeds without issuing a session.
var ErrNoSession = errors.New("platform returned no session")

// APIError is a non-2xx answer from the platform.
//
// The data API answers with {code, message, details, hint}; the auth API with
// either {error, error_description} or {code, error_code, msg}. Message holds
// whichever human-readable text was present.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details string
	Hint    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NotFound reports whether the error means "no matching row".
func (e *APIError) NotFound() bool {
	return e.Code == CodeNoSingleRow || e.Status == http.StatusNotFound
}

type apiErrorBody struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Details          string `json:"details"`
	Hint             string `json:"hint"`
}

func newAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}

	var body apiErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	apiErr.Details = body.Details
	apiErr.Hint = body.Hint

	switch code := body.Code.(type) {
	case string:
		apiErr.Code = code
	case float64:
		apiErr.Code = fmt.Sprintf("%d", int(code))
	}
	if body.ErrorCode != "" {
		apiErr.Code = body.ErrorCode
	} else if apiErr.Code == "" && body.Error != "" {
		apiErr.Code = body.Error
	}

	for _, candidate := range []string{body.Message, body.Msg, body.ErrorDescription, body.Error} {
		if candidate != "" {
			apiErr.Message = candidate
			break
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}
