// Package repository is the storage seam of the service.
//
// Invoices and profiles live either behind the platform's data API (default)
// or in PostgreSQL reached directly with pgx. Both implementations satisfy the
// same small interfaces, so services never know which one they talk to.
package repository

import (
	"context"
	"encoding/json"

	"github.com/sistemasdevbackend/autocenter/internal/models"
	"github.com/sistemasdevbackend/autocenter/internal/platform"
)

// ErrProfileNotFound means no profile row matches the username.
var ErrProfileNotFound = platform.ErrProfileNotFound

// InvoiceStore writes invoice rows.
type InvoiceStore interface {
	// InsertInvoice stores one row and returns it as persisted. A rejected
	// write is an *errs.HTTPError carrying the storage message.
	InsertInvoice(ctx context.Context, record *models.InvoiceRecord) (json.RawMessage, error)
}

// ProfileStore resolves usernames.
type ProfileStore interface {
	// FindProfileByUsername returns ErrProfileNotFound when no row matches.
	FindProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
}
