package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sistemasdevbackend/autocenter/internal/errs"
)

// ErrCode reports the Code of err, or Other when err is not an *Error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// generateErrorCode builds <DOMAIN>_<ACTION> from the table name and the
// violation, e.g. order_invoices + UniqueViolation => ORDER_INVOICE_ALREADY_EXISTS.
func generateErrorCode(tableName string, code Code) string {
	if tableName == "" {
		tableName = "record"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "REJECTED"
	switch code {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidText, NumericOutOfRange:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// HandleError converts a database error into an application error.
//
//   - *errs.HTTPError is returned unchanged.
//   - *pgconn.PgError becomes a storage error carrying the database message.
//   - ErrNoRows becomes a not found error.
//   - Anything else becomes a storage error carrying err.Error().
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		sqlErr := ConvertPgError(pgErr)
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)

		storageErr := errs.NewStorageError(sqlErr.Message, &errorCode)
		if sqlErr.Code == NotNullViolation && sqlErr.ColumnName != "" {
			storageErr.Errors = []errs.FieldError{{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			}}
		}
		return storageErr
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", nil)
	}

	return errs.NewStorageError(err.Error(), nil)
}
