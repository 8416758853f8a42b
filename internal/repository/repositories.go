package repository

import (
	"github.com/sistemasdevbackend/autocenter/internal/server"
)

// Repositories is the container of every store the services use.
type Repositories struct {
	Invoices InvoiceStore
	Profiles ProfileStore
}

// NewRepositories picks the implementation matching the storage driver.
func NewRepositories(s *server.Server) *Repositories {
	if s.Config.UsesPostgres() && s.DB != nil {
		return &Repositories{
			Invoices: NewInvoiceRepository(s.DB.Pool),
			Profiles: NewProfileRepository(s.DB.Pool),
		}
	}

	platformStore := NewPlatformStore(s.Platform)
	return &Repositories{
		Invoices: platformStore,
		Profiles: platformStore,
	}
}
