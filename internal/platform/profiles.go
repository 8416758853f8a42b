package platform

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/sistemasdevbackend/autocenter/internal/models"
)

const tableProfiles = "profiles"

// ErrProfileNotFound means no profile row matches the username.
var ErrProfileNotFound = errors.New("profile not found")

// FindProfileByUsername returns the email and active flag of the profile with
// the exact username. Zero or several matches yield ErrProfileNotFound.
func (c *Client) FindProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	query := url.Values{}
	query.Set("select", "email,is_active")
	query.Set("username", "eq."+username)

	header := http.Header{}
	header.Set("Accept", mimeSingleObject)

	var profile models.Profile
	err := c.do(ctx, http.MethodGet, c.endpoint(query, restPrefix, tableProfiles), nil, header, &profile)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return &profile, nil
}
