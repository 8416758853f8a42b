package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/sistemasdevbackend/autocenter/internal/middleware"
	"github.com/sistemasdevbackend/autocenter/internal/server"
	"github.com/sistemasdevbackend/autocenter/internal/validation"
)

// Handler carries the shared dependencies of concrete handlers.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives a validated, normalized
// request and returns the success payload or an error.
type HandlerFunc[Req any, Res any] func(c echo.Context, req *Req) (Res, error)

// requestPayload is satisfied by *Req for request structs that validate
// themselves.
type requestPayload[Req any] interface {
	*Req
	validation.Validatable
}

// Handle adapts a typed endpoint to echo. A fresh request value is decoded for
// every call, validated, handed to handler, and the result is written as JSON
// with status.
func Handle[Req any, Res any, P requestPayload[Req]](h Handler, handler HandlerFunc[Req, Res], status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		txn := newrelic.FromContext(c.Request().Context())
		if txn != nil {
			txn.AddAttribute("handler.name", c.Path())
		}

		logger := middleware.GetLogger(c).With().
			Str("operation", "handler").
			Str("route", c.Path()).
			Logger()

		logger.Debug().Msg("handling request")

		req := new(Req)

		validationStart := time.Now()
		if err := validation.BindAndValidate(c, P(req)); err != nil {
			validationDuration := time.Since(validationStart)

			logger.Warn().
				Err(err).
				Dur("validation_duration", validationDuration).
				Msg("request validation failed")

			if txn != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				txn.AddAttribute("validation.status", "failed")
				txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
			}

			return err
		}
		validationDuration := time.Since(validationStart)

		if txn != nil {
			txn.AddAttribute("validation.status", "success")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		handlerStart := time.Now()
		result, err := handler(c, req)
		handlerDuration := time.Since(handlerStart)

		if err != nil {
			logger.Warn().
				Err(err).
				Dur("handler_duration", handlerDuration).
				Dur("total_duration", time.Since(start)).
				Msg("handler execution failed")

			if txn != nil {
				txn.AddAttribute("handler.status", "error")
				txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			}

			return err
		}

		if txn != nil {
			txn.AddAttribute("handler.status", "success")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
		}

		logger.Info().
			Dur("validation_duration", validationDuration).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("request completed successfully")

		return c.JSON(status, result)
	}
}
