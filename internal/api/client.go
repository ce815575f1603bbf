package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"storefront-client/internal/config"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// TokenSource supplies the bearer token attached to each request.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

// Token returns f().
func (f TokenFunc) Token() string { return f() }

// UnauthorizedHandler is invoked when an authenticated request gets a 401.
type UnauthorizedHandler func(ctx context.Context)

var (
	_ AuthAPI    = (*Client)(nil)
	_ ProductAPI = (*Client)(nil)
	_ CartAPI    = (*Client)(nil)
	_ OrderAPI   = (*Client)(nil)
)

// Client is the storefront REST API client.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized UnauthorizedHandler
	metrics        *Metrics
	transport      http.RoundTripper
	logger         zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets where bearer tokens are read from.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithUnauthorizedHandler sets the handler run on 401 responses.
// Without one, 401 responses are only returned as errors.
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) { c.onUnauthorized = h }
}

// WithMetrics instruments the transport with the given collectors.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTransport replaces the base HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

// NewClient creates a new storefront API client.
func NewClient(cfg config.APIConfig, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		transport: http.DefaultTransport,
		logger:    logger.With().Str("component", "api-client").Logger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Apply transport wrappers in order: Instrument -> Logging -> base
	transport := Logging(c.logger)(c.transport)
	if c.metrics != nil {
		transport = Instrument(c.metrics)(transport)
	}

	c.http = &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}

	return c
}

// call describes a single API request.
type call struct {
	method string
	path   string
	route  string
	body   any
	// credentialExchange marks login/register: a 401 there means bad
	// credentials, not an expired session.
	credentialExchange bool
}

// do sends a request and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, cl call) (json.RawMessage, error) {
	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	route := cl.route
	if route == "" {
		route = cl.path
	}

	req, err := http.NewRequestWithContext(withRoute(ctx, route), cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Attach the bearer token read fresh for this request
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to %s %s: %w", cl.method, cl.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s %s: %w", cl.method, cl.path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !cl.credentialExchange && c.onUnauthorized != nil {
		c.logger.Warn().
			Str("path", cl.path).
			Str("request_id", requestID).
			Msg("session rejected by server, clearing credentials")
		c.onUnauthorized(ctx)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(resp.StatusCode, data, requestID)
	}

	return data, nil
}
