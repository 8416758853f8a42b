package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sistemasdevbackend/autocenter/internal/handler"
	"github.com/sistemasdevbackend/autocenter/internal/middleware"
)

const (
	FunctionsPrefix       = "/functions/v1"
	InsertInvoicePath     = FunctionsPrefix + "/insert-invoice"
	LoginWithUsernamePath = FunctionsPrefix + "/login-with-username"
)

var functionMethods = []string{http.MethodPost, http.MethodOptions}

// registerFunctionRoutes mounts each function on POST and OPTIONS. The CORS
// middleware answers OPTIONS before the handler is reached.
func registerFunctionRoutes(r *echo.Echo, h *handler.Handlers) {
	cors := middleware.FunctionCORS(functionMethods...)

	r.Match(functionMethods, InsertInvoicePath,
		handler.Handle(h.Functions.Handler, h.Functions.InsertInvoice, http.StatusOK),
		cors,
	)

	r.Match(functionMethods, LoginWithUsernamePath,
		handler.Handle(h.Functions.Handler, h.Functions.LoginWithUsername, http.StatusOK),
		cors,
	)
}
