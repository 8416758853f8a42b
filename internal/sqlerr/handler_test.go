package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemasdevbackend/autocenter/internal/errs"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("42P01"))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("whatever"))
}

func TestHandleError_UniqueViolationKeepsMessage(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        `duplicate key value violates unique constraint "order_invoices_invoice_folio_key"`,
		TableName:      "order_invoices",
		ConstraintName: "order_invoices_invoice_folio_key",
	}

	err := HandleError(fmt.Errorf("insert invoice: %w", pgErr))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ORDER_INVOICE_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, pgErr.Message, httpErr.Message)
}

func TestHandleError_NotNullViolationAddsFieldError(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23502",
		Message:    `null value in column "order_id" of relation "order_invoices" violates not-null constraint`,
		TableName:  "order_invoices",
		ColumnName: "order_id",
	})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "ORDER_INVOICE_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "order_id", httpErr.Errors[0].Field)
}

func TestHandleError_PassThroughAndFallbacks(t *testing.T) {
	original := errs.NewInvalidCredentialsError()
	assert.Same(t, original, HandleError(original))

	assert.Nil(t, HandleError(nil))

	var notFound *errs.HTTPError
	require.True(t, errors.As(HandleError(pgx.ErrNoRows), &notFound))
	assert.Equal(t, http.StatusNotFound, notFound.Status)

	var storage *errs.HTTPError
	require.True(t, errors.As(HandleError(errors.New("connection reset by peer")), &storage))
	assert.Equal(t, http.StatusBadRequest, storage.Status)
	assert.Equal(t, "connection reset by peer", storage.Message)
	assert.ErrorIs(t, storage, errs.ErrStorage)
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23514", Severity: "ERROR"})
	assert.Equal(t, CheckViolation, ErrCode(fmt.Errorf("wrapped: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(converted, &pgErr))
}
