package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sistemasdevbackend/autocenter/internal/middleware"
	"github.com/sistemasdevbackend/autocenter/internal/server"
)

const defaultHealthTimeout = 5 * time.Second

type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

// HealthHandler reports whether the service and its collaborators answer.
type HealthHandler struct {
	Handler
	checks  []healthCheck
	timeout time.Duration
}

// NewHealthHandler registers the enabled checks: the database pool when the
// postgres driver is used, and the platform auth API.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: defaultHealthTimeout,
	}

	obs := s.Config.Observability
	if obs != nil && obs.HealthChecks.Timeout > 0 {
		h.timeout = obs.HealthChecks.Timeout
	}

	enabled := func(name string) bool {
		return obs == nil || obs.HealthCheckEnabled(name)
	}

	if s.DB != nil && enabled("database") {
		h.checks = append(h.checks, healthCheck{name: "database", check: s.DB.Ping})
	}
	if s.Platform != nil && enabled("platform") {
		h.checks = append(h.checks, healthCheck{name: "platform", check: s.Platform.Health})
	}

	return h
}

// CheckHealth answers 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	checks := make(map[string]interface{}, len(h.checks))
	healthy := true

	for _, hc := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := hc.check(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err != nil {
			healthy = false
			checks[hc.name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}

			logger.Error().Err(err).Str("check", hc.name).Dur("response_time", elapsed).Msg("health check failed")
			h.recordFailure(hc.name, elapsed, err)
			continue
		}

		checks[hc.name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}
	}

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !healthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordFailure(name string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       name,
		"operation":        "health_check",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
