package handler

import (
	"github.com/sistemasdevbackend/autocenter/internal/server"
	"github.com/sistemasdevbackend/autocenter/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health    *HealthHandler
	Functions *FunctionHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		Functions: NewFunctionHandler(s, services.Invoice, services.Login),
	}
}
