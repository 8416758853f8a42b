// Package router builds the echo instance: global middleware, the error
// handler and every route.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sistemasdevbackend/autocenter/internal/handler"
	"github.com/sistemasdevbackend/autocenter/internal/middleware"
	"github.com/sistemasdevbackend/autocenter/internal/server"
)

// NewRouter returns the fully wired echo instance.
//
// Middleware order matters: the request id must exist before the context
// logger is built, and the New Relic transaction must exist before tracing
// attributes and trace ids are read.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
	)

	registerSystemRoutes(router, h)
	registerFunctionRoutes(router, h)

	return router
}
