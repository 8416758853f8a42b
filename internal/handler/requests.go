package handler

import (
	"github.com/sistemasdevbackend/autocenter/internal/errs"
	"github.com/sistemasdevbackend/autocenter/internal/models"
	"github.com/sistemasdevbackend/autocenter/internal/validation"
)

// InsertInvoiceRequest is the insert-invoice body. Pointers tell an absent
// field from a zero one.
type InsertInvoiceRequest struct {
	OrderID         *string  `json:"order_id" validate:"required,min=1"`
	InvoiceFolio    *string  `json:"invoice_folio" validate:"required,min=1"`
	XMLContent      *string  `json:"xml_content"`
	TotalAmount     *float64 `json:"total_amount" validate:"required"`
	Subtotal        *float64 `json:"subtotal"`
	IVA             *float64 `json:"iva"`
	ProveedorNombre *string  `json:"proveedor_nombre"`
	RFCProveedor    *string  `json:"rfc_proveedor"`
	Validados       *int64   `json:"validados"`
	Nuevos          *int64   `json:"nuevos"`
}

func (r *InsertInvoiceRequest) Validate() error {
	return validation.Struct(r)
}

// Normalize zeroes the optional amounts and counters.
func (r *InsertInvoiceRequest) Normalize() {
	r.Subtotal = zeroIfNil(r.Subtotal)
	r.IVA = zeroIfNil(r.IVA)
	r.Validados = zeroIfNil(r.Validados)
	r.Nuevos = zeroIfNil(r.Nuevos)
}

// Record converts a normalized request into the stored record.
func (r *InsertInvoiceRequest) Record() *models.InvoiceRecord {
	record := &models.InvoiceRecord{
		XMLContent:      r.XMLContent,
		ProveedorNombre: r.ProveedorNombre,
		RFCProveedor:    r.RFCProveedor,
	}
	if r.OrderID != nil {
		record.OrderID = *r.OrderID
	}
	if r.InvoiceFolio != nil {
		record.InvoiceFolio = *r.InvoiceFolio
	}
	if r.TotalAmount != nil {
		record.TotalAmount = *r.TotalAmount
	}
	if r.Subtotal != nil {
		record.Subtotal = *r.Subtotal
	}
	if r.IVA != nil {
		record.IVA = *r.IVA
	}
	if r.Validados != nil {
		record.Validados = *r.Validados
	}
	if r.Nuevos != nil {
		record.Nuevos = *r.Nuevos
	}
	return record
}

func zeroIfNil[T int64 | float64](v *T) *T {
	if v != nil {
		return v
	}
	var zero T
	return &zero
}

// LoginWithUsernameRequest is the login-with-username body.
type LoginWithUsernameRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate requires both fields. The message is the same whichever is missing.
func (r *LoginWithUsernameRequest) Validate() error {
	var fieldErrors []errs.FieldError
	if r.Username == "" {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "username", Error: "is required"})
	}
	if r.Password == "" {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "password", Error: "is required"})
	}
	if len(fieldErrors) > 0 {
		return errs.NewValidationError(errs.MsgCredentialsRequired, fieldErrors)
	}
	return nil
}
