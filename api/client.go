// Package api is a typed client for the storefront REST backend. Every
// screen of the client is a thin view over these calls: there is no caching,
// no queuing and no retry anywhere — a failed request is surfaced and the
// user repeats it with a new gesture.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const defaultTimeout = 15 * time.Second

// Client talks to the backend. All resource operations hang off it; it is
// stateless apart from the token source and safe for sequential use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option modifies a Client at construction time.
type Option func(*Client)

// WithLogger sets the client's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a client for the backend at baseURL. The token source supplies
// the bearer token per request; a source yielding an empty token leaves the
// request unauthenticated, which is what the public endpoints expect.
func New(baseURL string, source oauth2.TokenSource, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     zerolog.Nop(),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: &bearerTransport{source: source, base: http.DefaultTransport},
		},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// bearerTransport attaches the bearer token and a correlation ID to every
// outgoing request.
type bearerTransport struct {
	source oauth2.TokenSource
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.source != nil {
		if token, err := t.source.Token(); err == nil && token.Valid() {
			token.SetAuthHeader(clone)
		}
	}
	clone.Header.Set("X-Request-ID", uuid.NewString())
	return t.base.RoundTrip(clone)
}

// do issues a JSON request and decodes the response into out (when non-nil).
// Responses with status >= 400 become *Error values carrying the taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req, out)
}

// doMultipart issues a multipart form request, used by the product screens
// that upload an image alongside the fields.
func (c *Client) doMultipart(ctx context.Context, method, path string, form *bytes.Buffer, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, form)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Msg("api request")

	if resp.StatusCode >= http.StatusBadRequest {
		return newError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
