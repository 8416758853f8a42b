package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemasdevbackend/autocenter/internal/config"
	"github.com/sistemasdevbackend/autocenter/internal/errs"
	"github.com/sistemasdevbackend/autocenter/internal/handler"
	"github.com/sistemasdevbackend/autocenter/internal/models"
	"github.com/sistemasdevbackend/autocenter/internal/platform"
	"github.com/sistemasdevbackend/autocenter/internal/repository"
	"github.com/sistemasdevbackend/autocenter/internal/server"
	"github.com/sistemasdevbackend/autocenter/internal/service"
)

type memoryInvoices struct {
	inserted []*models.InvoiceRecord
	err      error
}

func (m *memoryInvoices) InsertInvoice(ctx context.Context, record *models.InvoiceRecord) (json.RawMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.inserted = append(m.inserted, record)

	row := map[string]any{"id": len(m.inserted)}
	raw, _ := json.Marshal(record)
	_ = json.Unmarshal(raw, &row)
	return json.Marshal(row)
}

type memoryProfiles map[string]*models.Profile

func (m memoryProfiles) FindProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	if profile, ok := m[username]; ok {
		return profile, nil
	}
	return nil, repository.ErrProfileNotFound
}

type memoryAuth struct {
	passwords map[string]string
	calls     int
}

func (m *memoryAuth) SignInWithPassword(ctx context.Context, email, password string) (*models.AuthResult, error) {
	m.calls++
	if m.passwords[email] != password {
		return nil, &platform.APIError{Status: http.StatusBadRequest, Code: "invalid_credentials", Message: "Invalid login credentials"}
	}
	return &models.AuthResult{
		Session: json.RawMessage(`{"access_token":"jwt","refresh_token":"refresh"}`),
		User:    json.RawMessage(`{"id":"u-1","email":"` + email + `"}`),
	}, nil
}

type fixture struct {
	router   *echo.Echo
	invoices *memoryInvoices
	auth     *memoryAuth
}

func boolPtr(v bool) *bool { return &v }

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Storage:       config.StorageConfig{Driver: config.DriverPlatform},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := newTestServer()
	invoices := &memoryInvoices{}
	profiles := memoryProfiles{
		"alice": {Email: "alice@example.com", IsActive: boolPtr(true)},
		"bob":   {Email: "bob@example.com", IsActive: boolPtr(false)},
	}
	auth := &memoryAuth{passwords: map[string]string{
		"alice@example.com": "s3cret",
		"bob@example.com":   "s3cret",
	}}

	services := &service.Services{
		Invoice: service.NewInvoiceService(invoices),
		Login:   service.NewLoginService(profiles, auth),
	}

	return &fixture{
		router:   NewRouter(s, handler.NewHandlers(s, services)),
		invoices: invoices,
		auth:     auth,
	}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func assertCORS(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
	assert.Equal(t, "Content-Type, Authorization, X-Client-Info, Apikey", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
}

func assertJSONResponse(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assertCORS(t, rec)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON))
}

func TestPreflight(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{InsertInvoicePath, LoginWithUsernamePath} {
		first := f.do(http.MethodOptions, path, "")
		second := f.do(http.MethodOptions, path, `{"not":"read"`)

		for _, rec := range []*httptest.ResponseRecorder{first, second} {
			assert.Equal(t, http.StatusOK, rec.Code, path)
			assert.Empty(t, rec.Body.String(), path)
			assert.Empty(t, rec.Header().Get(echo.HeaderContentType), path)
			assertCORS(t, rec)
		}
	}

	assert.Empty(t, f.invoices.inserted)
	assert.Zero(t, f.auth.calls)
}

func TestInsertInvoice_Success(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, InsertInvoicePath, `{"order_id":"ORD-1","invoice_folio":"F-1","total_amount":116.5,"xml_content":"<cfdi/>"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assertJSONResponse(t, rec)

	body := decode(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ORD-1", data["order_id"])
	assert.Equal(t, "F-1", data["invoice_folio"])
	assert.Equal(t, 116.5, data["total_amount"])
	assert.Equal(t, float64(0), data["subtotal"])
	assert.Equal(t, float64(0), data["iva"])
	assert.Equal(t, float64(0), data["validados"])
	assert.Equal(t, float64(0), data["nuevos"])

	require.Len(t, f.invoices.inserted, 1)
	assert.Equal(t, "<cfdi/>", *f.invoices.inserted[0].XMLContent)
}

func TestInsertInvoice_KeepsProvidedOptionals(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, InsertInvoicePath, `{"order_id":"ORD-2","invoice_folio":"F-2","total_amount":116,"subtotal":100,"iva":16,"validados":3,"nuevos":1,"proveedor_nombre":"ACME","rfc_proveedor":"ACM010101AAA"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	record := f.invoices.inserted[0]
	assert.Equal(t, 100.0, record.Subtotal)
	assert.Equal(t, 16.0, record.IVA)
	assert.Equal(t, int64(3), record.Validados)
	assert.Equal(t, int64(1), record.Nuevos)
	assert.Equal(t, "ACME", *record.ProveedorNombre)
}

func TestInsertInvoice_MissingRequiredFields(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, InsertInvoicePath, `{"invoice_folio":"F-1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assertJSONResponse(t, rec)
	assert.Equal(t, map[string]any{"error": "order_id is required; total_amount is required"}, decode(t, rec))
	assert.Empty(t, f.invoices.inserted)
}

func TestInsertInvoice_StorageRejection(t *testing.T) {
	f := newFixture(t)
	message := `duplicate key value violates unique constraint "order_invoices_invoice_folio_key"`
	f.invoices.err = errs.NewStorageError(message, nil)

	rec := f.do(http.MethodPost, InsertInvoicePath, `{"order_id":"ORD-1","invoice_folio":"F-1","total_amount":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assertJSONResponse(t, rec)
	assert.Equal(t, map[string]any{"error": message}, decode(t, rec))
}

func TestInsertInvoice_StoreFailureIsStorageError(t *testing.T) {
	f := newFixture(t)
	f.invoices.err = errors.New("connection reset by peer")

	rec := f.do(http.MethodPost, InsertInvoicePath, `{"order_id":"ORD-1","invoice_folio":"F-1","total_amount":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"error": "connection reset by peer"}, decode(t, rec))
}

func TestMalformedJSON(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{InsertInvoicePath, LoginWithUsernamePath} {
		rec := f.do(http.MethodPost, path, `{"order_id":`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assertJSONResponse(t, rec)
		assert.Equal(t, map[string]any{"error": "unexpected end of JSON input"}, decode(t, rec))
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{
		`{}`,
		`{"username":"alice"}`,
		`{"password":"s3cret"}`,
		`{"username":"","password":"s3cret"}`,
		`{"username":"alice","password":""}`,
		`null`,
	} {
		rec := f.do(http.MethodPost, LoginWithUsernamePath, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assertJSONResponse(t, rec)
		assert.Equal(t, map[string]any{"error": "Username and password are required"}, decode(t, rec), body)
	}

	assert.Zero(t, f.auth.calls)
}

func TestLogin_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"unknown user", `{"username":"ghost","password":"anything"}`, http.StatusUnauthorized, "Usuario no encontrado"},
		{"inactive with right password", `{"username":"bob","password":"s3cret"}`, http.StatusUnauthorized, "Usuario inactivo"},
		{"inactive with wrong password", `{"username":"bob","password":"wrong"}`, http.StatusUnauthorized, "Usuario inactivo"},
		{"wrong password", `{"username":"alice","password":"wrong"}`, http.StatusUnauthorized, "Credenciales incorrectas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPost, LoginWithUsernamePath, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assertJSONResponse(t, rec)
			assert.Equal(t, map[string]any{"error": tt.message}, decode(t, rec))
		})
	}
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, LoginWithUsernamePath, `{"username":"alice","password":"s3cret"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assertJSONResponse(t, rec)
	assert.JSONEq(t, `{
		"success": true,
		"session": {"access_token":"jwt","refresh_token":"refresh"},
		"user": {"id":"u-1","email":"alice@example.com"}
	}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/functions/v1/does-not-exist", `{}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{"error": "Route not found"}, decode(t, rec))
}

func TestStatus(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/status", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["environment"])
}

func TestStatus_PlatformDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	s := newTestServer()
	client, err := platform.NewClient(config.PlatformConfig{URL: upstream.URL, ServiceKey: "key"})
	require.NoError(t, err)
	s.Platform = client

	services := &service.Services{
		Invoice: service.NewInvoiceService(&memoryInvoices{}),
		Login:   service.NewLoginService(memoryProfiles{}, &memoryAuth{}),
	}
	router := NewRouter(s, handler.NewHandlers(s, services))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "unhealthy", body["status"])

	checks := body["checks"].(map[string]any)
	assert.Equal(t, "unhealthy", checks["platform"].(map[string]any)["status"])
}
