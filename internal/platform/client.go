// Package platform is the client for the managed backend platform: its REST
// data API (order_invoices, profiles) and its auth API (password sign-in).
//
// Every call is authenticated with the service-role key, which is the elevated
// credential that bypasses row level restrictions and the read path cache.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/sistemasdevbackend/autocenter/internal/config"
)

const (
	restPrefix = "rest/v1"
	authPrefix = "auth/v1"

	clientInfo = "autocenter-functions/1.0"

	// mimeSingleObject asks the data API for exactly one object instead of an
	// array. Zero or many rows become a 406 with code PGRST116.
	mimeSingleObject = "application/vnd.pgrst.object+json"
	mimeJSON         = "application/json"
)

// Client talks to the platform over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL        *url.URL
	serviceKey     string
	requestTimeout time.Duration
	httpClient     *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient builds a Client from the platform config.
//
// The URL and service key are required: an empty value is an error here so a
// misconfigured process never sends requests to an empty base URL.
func NewClient(cfg config.PlatformConfig, opts ...Option) (*Client, error) {
	if cfg.URL == "" || cfg.ServiceKey == "" {
		return nil, errors.New("platform url and service key are required")
	}

	baseURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid platform url")
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid platform url %q: scheme and host are required", cfg.URL)
	}

	client := &Client{
		baseURL:        baseURL,
		serviceKey:     cfg.ServiceKey,
		requestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		httpClient:     http.DefaultClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// endpoint joins the base URL with path segments and an optional query.
func (c *Client) endpoint(query url.Values, segments ...string) string {
	u := c.baseURL.JoinPath(segments...)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends one request and decodes a 2xx JSON body into out (when out is
// non-nil). Non-2xx responses are returned as *APIError.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, header http.Header, out any) error {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode platform request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build platform request")
	}

	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("X-Client-Info", clientInfo)
	req.Header.Set("Accept", mimeJSON)
	if body != nil {
		req.Header.Set("Content-Type", mimeJSON)
	}
	for key, values := range header {
		req.Header[key] = values
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "platform request %s %s failed", method, req.URL.Path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read platform response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "failed to decode platform response")
	}

	return nil
}

// Health checks that the platform auth API answers.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.endpoint(nil, authPrefix, "health"), nil, nil, nil)
}
