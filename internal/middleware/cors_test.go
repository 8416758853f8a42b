package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestFunctionCORS_Preflight(t *testing.T) {
	e := echo.New()
	called := false
	handler := FunctionCORS(http.MethodPost, http.MethodOptions)(func(c echo.Context) error {
		called = true
		return c.String(http.StatusTeapot, "should not run")
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodOptions, "/functions/v1/insert-invoice", strings.NewReader(`{"broken":`))
		rec := httptest.NewRecorder()

		assert.NoError(t, handler(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Empty(t, rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Equal(t, "POST, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
		assert.Equal(t, CORSAllowHeaders, rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
	}

	assert.False(t, called)
}

func TestFunctionCORS_PassesOtherMethods(t *testing.T) {
	e := echo.New()
	handler := FunctionCORS(http.MethodPost, http.MethodOptions)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/functions/v1/insert-invoice", nil)
	rec := httptest.NewRecorder()

	assert.NoError(t, handler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}
