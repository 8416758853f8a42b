package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/sistemasdevbackend/autocenter/internal/errs"
	"github.com/sistemasdevbackend/autocenter/internal/lib/chain"
	"github.com/sistemasdevbackend/autocenter/internal/models"
	"github.com/sistemasdevbackend/autocenter/internal/repository"
)

type InvoiceService struct {
	invoices repository.InvoiceStore
}

func NewInvoiceService(invoices repository.InvoiceStore) *InvoiceService {
	return &InvoiceService{invoices: invoices}
}

type insertState struct {
	record *models.InvoiceRecord
	stored json.RawMessage
}

// Insert writes the invoice and returns the row as stored. Any storage
// failure becomes a 400 carrying the storage message.
func (s *InvoiceService) Insert(ctx context.Context, record *models.InvoiceRecord) (json.RawMessage, error) {
	state := &insertState{record: record}

	err := chain.Run(ctx, state, chain.Step[insertState]{
		Name: "insert-invoice",
		Run:  s.insert,
	})
	if err != nil {
		return nil, err
	}

	return state.stored, nil
}

func (s *InvoiceService) insert(ctx context.Context, state *insertState) error {
	stored, err := s.invoices.InsertInvoice(ctx, state.record)
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("order_id", state.record.OrderID).
			Str("invoice_folio", state.record.InvoiceFolio).
			Msg("invoice insert rejected")

		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return errs.NewStorageError(err.Error(), nil)
	}

	state.stored = stored
	return nil
}
