// Package transport is the HTTP layer shared by the registry and issue
// tracker clients and by remote source exports.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/registrysync/pkg/constants"
	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http       *http.Client
	auth       Authenticator
	credential string
	service    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCredential sets the secret handed to the authenticator.
func WithCredential(credential string) Option {
	return func(c *Client) {
		c.credential = credential
	}
}

// WithService names the remote service in errors.
func WithService(service string) Option {
	return func(c *Client) {
		c.service = service
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		auth:      auth,
		service:   "remote",
		userAgent: "registrysync",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.credential != "" {
		c.auth.Apply(req, c.credential)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.FromContext(ctx).Debug().
		Str("service", c.service).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("HTTP request")

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return nil, &errors.APIError{
			Service:  c.service,
			Endpoint: req.URL.String(),
			Message:  err.Error(),
			Err:      err,
		}
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(ctx, req)
}

// JSON sends body encoded as JSON and decodes a JSON response into target.
// A nil body sends no payload and a nil target discards the response.
func (c *Client) JSON(ctx context.Context, method, url string, body, target any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.WrapParse("json", "request", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return errors.WrapResource("create", "request", method+" "+url, err)
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return c.Decode(ctx, resp, target)
}

// Decode reads resp and decodes its JSON body into target. Non 2xx statuses
// become *errors.APIError.
func (c *Client) Decode(ctx context.Context, resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		endpoint := ""
		if resp.Request != nil && resp.Request.URL != nil {
			endpoint = resp.Request.URL.String()
		}
		return &errors.APIError{
			Service:    c.service,
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   endpoint,
		}
	}

	if target == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if s, ok := target.(*string); ok {
		*s = string(body)
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}
	return nil
}

// Fetch returns the body of a GET request.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	var body string
	if err := c.Decode(ctx, resp, &body); err != nil {
		return nil, err
	}
	return []byte(body), nil
}
