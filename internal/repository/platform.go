package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sistemasdevbackend/autocenter/internal/errs"
	"github.com/sistemasdevbackend/autocenter/internal/models"
	"github.com/sistemasdevbackend/autocenter/internal/platform"
)

// PlatformClient is the part of *platform.Client the stores need.
type PlatformClient interface {
	InsertInvoice(ctx context.Context, record *models.InvoiceRecord) (json.RawMessage, error)
	FindProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
}

// PlatformStore keeps invoices and profiles behind the platform's data API,
// using the service-role key.
type PlatformStore struct {
	client PlatformClient
}

func NewPlatformStore(client PlatformClient) *PlatformStore {
	return &PlatformStore{client: client}
}

func (s *PlatformStore) InsertInvoice(ctx context.Context, record *models.InvoiceRecord) (json.RawMessage, error) {
	stored, err := s.client.InsertInvoice(ctx, record)
	if err != nil {
		return nil, storageError(err)
	}
	return stored, nil
}

func (s *PlatformStore) FindProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.client.FindProfileByUsername(ctx, username)
}

// storageError keeps the platform's own message so clients see it unchanged.
func storageError(err error) error {
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code != "" {
			code := apiErr.Code
			return errs.NewStorageError(apiErr.Message, &code)
		}
		return errs.NewStorageError(apiErr.Message, nil)
	}
	return errs.NewStorageError(err.Error(), nil)
}
