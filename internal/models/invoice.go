package models

// InvoiceRecord is the normalized row written to the order_invoices collection.
//
// Optional amounts and counters are plain values: they default to 0 before the
// record reaches storage. Optional text fields stay nil when absent so the
// storage layer applies its own defaults.
type InvoiceRecord struct {
	OrderID         string  `json:"order_id" db:"order_id"`
	InvoiceFolio    string  `json:"invoice_folio" db:"invoice_folio"`
	XMLContent      *string `json:"xml_content,omitempty" db:"xml_content"`
	TotalAmount     float64 `json:"total_amount" db:"total_amount"`
	Subtotal        float64 `json:"subtotal" db:"subtotal"`
	IVA             float64 `json:"iva" db:"iva"`
	ProveedorNombre *string `json:"proveedor_nombre,omitempty" db:"proveedor_nombre"`
	RFCProveedor    *string `json:"rfc_proveedor,omitempty" db:"rfc_proveedor"`
	Validados       int64   `json:"validados" db:"validados"`
	Nuevos          int64   `json:"nuevos" db:"nuevos"`
}
