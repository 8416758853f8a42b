package platform

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sistemasdevbackend/autocenter/internal/models"
)

const tableOrderInvoices = "order_invoices"

// InsertInvoice writes one row to order_invoices and returns the stored row as
// the platform represents it (generated columns included).
func (c *Client) InsertInvoice(ctx context.Context, record *models.InvoiceRecord) (json.RawMessage, error) {
	header := http.Header{}
	header.Set("Prefer", "return=representation")
	header.Set("Accept", mimeSingleObject)

	var stored json.RawMessage
	err := c.do(ctx, http.MethodPost, c.endpoint(nil, restPrefix, tableOrderInvoices), record, header, &stored)
	if err != nil {
		return nil, err
	}

	return stored, nil
}
