package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Headers every function answers with.
const (
	CORSAllowOrigin  = "*"
	CORSAllowHeaders = "Content-Type, Authorization, X-Client-Info, Apikey"
)

// FunctionCORS answers preflight requests of a function and stamps the CORS
// headers on every other response.
//
// An OPTIONS request ends here with 200 and an empty body; nothing is read or
// validated and no collaborator is called, so repeated preflights are
// identical. methods lists the verbs the function accepts.
func FunctionCORS(methods ...string) echo.MiddlewareFunc {
	allowMethods := strings.Join(methods, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()
			header.Set(echo.HeaderAccessControlAllowOrigin, CORSAllowOrigin)
			header.Set(echo.HeaderAccessControlAllowMethods, allowMethods)
			header.Set(echo.HeaderAccessControlAllowHeaders, CORSAllowHeaders)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}

			return next(c)
		}
	}
}
