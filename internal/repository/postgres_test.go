package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemasdevbackend/autocenter/internal/errs"
	"github.com/sistemasdevbackend/autocenter/internal/models"
)

// fakeDB records the last statement and answers with canned rows.
type fakeDB struct {
	sql  string
	args []any

	row  pgx.Row
	rows pgx.Rows
	err  error
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql, f.args = sql, args
	return pgconn.CommandTag{}, f.err
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.sql, f.args = sql, args
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.sql, f.args = sql, args
	return f.row
}

type fakeRow struct {
	value json.RawMessage
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*json.RawMessage)) = r.value
	return nil
}

// fakeProfileRows serves email/is_active rows.
type fakeProfileRows struct {
	data   []models.Profile
	cursor int
	closed bool
}

func (r *fakeProfileRows) Close()                        { r.closed = true }
func (r *fakeProfileRows) Err() error                    { return nil }
func (r *fakeProfileRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeProfileRows) Conn() *pgx.Conn               { return nil }
func (r *fakeProfileRows) RawValues() [][]byte           { return nil }

func (r *fakeProfileRows) FieldDescriptions() []pgconn.FieldDescription {
	return []pgconn.FieldDescription{{Name: "email"}, {Name: "is_active"}}
}

func (r *fakeProfileRows) Next() bool {
	if r.closed || r.cursor >= len(r.data) {
		r.closed = true
		return false
	}
	r.cursor++
	return true
}

func (r *fakeProfileRows) Scan(dest ...any) error {
	current := r.data[r.cursor-1]
	*(dest[0].(*string)) = current.Email
	*(dest[1].(**bool)) = current.IsActive
	return nil
}

func (r *fakeProfileRows) Values() ([]any, error) {
	current := r.data[r.cursor-1]
	return []any{current.Email, current.IsActive}, nil
}

func boolPtr(v bool) *bool { return &v }

func TestInvoiceRepository_Insert(t *testing.T) {
	db := &fakeDB{row: fakeRow{value: json.RawMessage(`{"id":1,"order_id":"ORD-1"}`)}}
	repo := NewInvoiceRepository(db)

	folio := "F-1"
	stored, err := repo.InsertInvoice(context.Background(), &models.InvoiceRecord{
		OrderID:      "ORD-1",
		InvoiceFolio: folio,
		TotalAmount:  10,
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"order_id":"ORD-1"}`, string(stored))
	assert.Contains(t, db.sql, "INSERT INTO order_invoices")
	assert.Contains(t, db.sql, "RETURNING to_jsonb(oi)")

	require.Len(t, db.args, 1)
	args, ok := db.args[0].(pgx.NamedArgs)
	require.True(t, ok)
	assert.Equal(t, "ORD-1", args["order_id"])
	assert.Equal(t, float64(0), args["subtotal"])
	assert.Equal(t, int64(0), args["nuevos"])
}

func TestInvoiceRepository_InsertRejected(t *testing.T) {
	message := `duplicate key value violates unique constraint "order_invoices_invoice_folio_key"`
	db := &fakeDB{row: fakeRow{err: &pgconn.PgError{
		Code:      "23505",
		Message:   message,
		TableName: "order_invoices",
	}}}

	_, err := NewInvoiceRepository(db).InsertInvoice(context.Background(), &models.InvoiceRecord{OrderID: "ORD-1"})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func TestProfileRepository_Find(t *testing.T) {
	rows := &fakeProfileRows{data: []models.Profile{{Email: "alice@example.com", IsActive: boolPtr(true)}}}
	db := &fakeDB{rows: rows}

	profile, err := NewProfileRepository(db).FindProfileByUsername(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.True(t, profile.Active())
	assert.Equal(t, pgx.NamedArgs{"username": "alice"}, db.args[0])
	assert.True(t, rows.closed)
}

func TestProfileRepository_NotFound(t *testing.T) {
	db := &fakeDB{rows: &fakeProfileRows{}}

	profile, err := NewProfileRepository(db).FindProfileByUsername(context.Background(), "ghost")

	assert.Nil(t, profile)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileRepository_Ambiguous(t *testing.T) {
	db := &fakeDB{rows: &fakeProfileRows{data: []models.Profile{
		{Email: "a@example.com", IsActive: boolPtr(true)},
		{Email: "b@example.com", IsActive: boolPtr(true)},
	}}}

	_, err := NewProfileRepository(db).FindProfileByUsername(context.Background(), "dup")

	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileRepository_QueryError(t *testing.T) {
	db := &fakeDB{err: errors.New("connection refused")}

	_, err := NewProfileRepository(db).FindProfileByUsername(context.Background(), "alice")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
	assert.Contains(t, err.Error(), "connection refused")
}
