package handler

import (
	"context"
	"encoding/json"

	"github.com/labstack/echo/v4"

	"github.com/sistemasdevbackend/autocenter/internal/models"
	"github.com/sistemasdevbackend/autocenter/internal/server"
)

// InvoiceInserter is the service behind insert-invoice.
type InvoiceInserter interface {
	Insert(ctx context.Context, record *models.InvoiceRecord) (json.RawMessage, error)
}

// UsernameAuthenticator is the service behind login-with-username.
type UsernameAuthenticator interface {
	Login(ctx context.Context, username, password string) (*models.AuthResult, error)
}

type FunctionHandler struct {
	Handler
	invoices InvoiceInserter
	login    UsernameAuthenticator
}

func NewFunctionHandler(s *server.Server, invoices InvoiceInserter, login UsernameAuthenticator) *FunctionHandler {
	return &FunctionHandler{
		Handler:  NewHandler(s),
		invoices: invoices,
		login:    login,
	}
}

// InsertInvoice stores one order invoice and echoes the stored row.
func (h *FunctionHandler) InsertInvoice(c echo.Context, req *InsertInvoiceRequest) (*InsertInvoiceResponse, error) {
	stored, err := h.invoices.Insert(c.Request().Context(), req.Record())
	if err != nil {
		return nil, err
	}

	return &InsertInvoiceResponse{Data: stored}, nil
}

// LoginWithUsername signs a user in by username instead of email.
func (h *FunctionHandler) LoginWithUsername(c echo.Context, req *LoginWithUsernameRequest) (*LoginResponse, error) {
	result, err := h.login.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Success: true,
		Session: result.Session,
		User:    result.User,
	}, nil
}
