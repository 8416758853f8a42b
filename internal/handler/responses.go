package handler

import "encoding/json"

// InsertInvoiceResponse wraps the stored row.
type InsertInvoiceResponse struct {
	Data json.RawMessage `json:"data"`
}

// LoginResponse relays the platform session and user untouched.
type LoginResponse struct {
	Success bool            `json:"success"`
	Session json.RawMessage `json:"session"`
	User    json.RawMessage `json:"user"`
}
