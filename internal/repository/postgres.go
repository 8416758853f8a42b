package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sistemasdevbackend/autocenter/internal/models"
	"github.com/sistemasdevbackend/autocenter/internal/sqlerr"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InvoiceRepository writes order_invoices rows over a direct connection.
type InvoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

const insertInvoiceSQL = `
	INSERT INTO order_invoices AS oi (
		order_id, invoice_folio, xml_content, total_amount, subtotal, iva,
		proveedor_nombre, rfc_proveedor, validados, nuevos
	) VALUES (
		@order_id, @invoice_folio, @xml_content, @total_amount, @subtotal, @iva,
		@proveedor_nombre, @rfc_proveedor, @validados, @nuevos
	)
	RETURNING to_jsonb(oi)`

// InsertInvoice returns the stored row, generated columns included.
func (r *InvoiceRepository) InsertInvoice(ctx context.Context, record *models.InvoiceRecord) (json.RawMessage, error) {
	args := pgx.NamedArgs{
		"order_id":         record.OrderID,
		"invoice_folio":    record.InvoiceFolio,
		"xml_content":      record.XMLContent,
		"total_amount":     record.TotalAmount,
		"subtotal":         record.Subtotal,
		"iva":              record.IVA,
		"proveedor_nombre": record.ProveedorNombre,
		"rfc_proveedor":    record.RFCProveedor,
		"validados":        record.Validados,
		"nuevos":           record.Nuevos,
	}

	var stored json.RawMessage
	if err := r.db.QueryRow(ctx, insertInvoiceSQL, args).Scan(&stored); err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("insert order_invoices: %w", err))
	}

	return stored, nil
}

// ProfileRepository reads profiles over a direct connection.
type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const findProfileByUsernameSQL = `
	SELECT email, is_active
	FROM profiles
	WHERE username = @username`

// FindProfileByUsername requires exactly one match.
func (r *ProfileRepository) FindProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	rows, err := r.db.Query(ctx, findProfileByUsernameSQL, pgx.NamedArgs{"username": username})
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}

	profile, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Profile])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, pgx.ErrTooManyRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("collect profile: %w", err)
	}

	return &profile, nil
}
