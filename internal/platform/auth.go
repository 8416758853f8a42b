package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/sistemasdevbackend/autocenter/internal/models"
)

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string          `json:"access_token"`
	User        json.RawMessage `json:"user"`
}

// SignInWithPassword exchanges an email and password for a session.
//
// The whole token response is the session; its user member is returned
// separately. A 2xx answer without an access token is ErrNoSession.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*models.AuthResult, error) {
	query := url.Values{}
	query.Set("grant_type", "password")

	var raw json.RawMessage
	err := c.do(ctx, http.MethodPost, c.endpoint(query, authPrefix, "token"), passwordGrant{
		Email:    email,
		Password: password,
	}, nil, &raw)
	if err != nil {
		return nil, err
	}

	var token tokenResponse
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, errors.Wrap(err, "failed to decode sign-in response")
	}

	if token.AccessToken == "" {
		return &models.AuthResult{User: token.User}, ErrNoSession
	}

	return &models.AuthResult{Session: raw, User: token.User}, nil
}
