package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/sistemasdevbackend/autocenter/internal/errs"
	"github.com/sistemasdevbackend/autocenter/internal/server"
)

// GlobalMiddlewares groups the middleware installed on every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
	events *EventRecorder
}

func NewGlobalMiddlewares(s *server.Server, events *EventRecorder) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
		events: events,
	}
}

// RequestLogger writes one "API" line per request, at a level derived from
// the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler has not written the response yet when a
			// handler returns an error, so v.Status may still read 200.
			if v.Error != nil {
				statusCode = statusOf(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns panics into a generic 500. The panic value and stack are
// logged, never sent to the client.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("recovered from panic")

			return errors.WithStack(&panicError{cause: err})
		},
	})
}

// Secure adds the standard security headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

type panicError struct {
	cause error
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.cause)
}

func (e *panicError) Unwrap() error {
	return e.cause
}

// toHTTPError maps any error onto the taxonomy.
//
//   - *errs.HTTPError is kept.
//   - a recovered panic becomes a generic 500.
//   - *echo.HTTPError (unknown route, wrong method) keeps its status.
//   - anything else is unexpected: 500 with the error's own message.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var recovered *panicError
	if errors.As(err, &recovered) {
		return errs.NewInternalServerError()
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found", nil)
		}

		message := http.StatusText(echoErr.Code)
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			message = msg
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	return errs.NewUnexpectedError(err.Error())
}

func statusOf(err error) int {
	return toHTTPError(err).Status
}

// GlobalErrorHandler is the single funnel every returned error goes through.
// It logs the original error and writes {"error": message} with the mapped
// status.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := toHTTPError(err)

	logger := GetLogger(c)

	var event *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	} else {
		event = logger.Warn()
	}

	event.
		Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Interface("field_errors", httpErr.Errors).
		Msg(httpErr.Message)

	if httpErr.Status >= http.StatusBadRequest && httpErr.Status < http.StatusInternalServerError {
		global.events.RecordRejection(c.Path(), httpErr.Code, httpErr.Status)
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}

	_ = c.JSON(httpErr.Status, httpErr.Response())
}
