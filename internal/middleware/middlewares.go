package middleware

import (
	"github.com/sistemasdevbackend/autocenter/internal/server"
)

// Middlewares groups the middleware components built once at startup.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	Events          *EventRecorder
}

// NewMiddlewares wires every component to the server container. Without a
// New Relic application the tracing and event parts are no-ops.
func NewMiddlewares(s *server.Server) *Middlewares {
	nrApp := s.LoggerService.GetApplication()
	events := NewEventRecorder(nrApp)

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s, events),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		Events:          events,
	}
}
