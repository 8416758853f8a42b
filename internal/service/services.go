// Package service holds the business flows behind each function.
//
// Handlers hand over validated, normalized input; services run the dependent
// calls against the stores and the platform and translate every failure into
// an *errs.HTTPError the handler boundary can render.
package service

import (
	"github.com/sistemasdevbackend/autocenter/internal/repository"
	"github.com/sistemasdevbackend/autocenter/internal/server"
)

type Services struct {
	Invoice *InvoiceService
	Login   *LoginService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Invoice: NewInvoiceService(repos.Invoices),
		Login:   NewLoginService(repos.Profiles, s.Platform),
	}, nil
}
