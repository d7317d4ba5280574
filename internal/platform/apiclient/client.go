// Package apiclient is the HTTP transport shared by every resource gateway.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/barbox/barbox-admin/internal/observability"
	"github.com/barbox/barbox-admin/internal/shared"
)

const (
	// DefaultBaseURL is used when no backend address is configured.
	DefaultBaseURL = "http://localhost:3000/api/v1"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	requestIDHeader = "X-Request-ID"
)

var placeholderSegments = map[string]bool{"NaN": true, "undefined": true, "null": true}

// TokenStore holds the bearer token shared by all outgoing requests.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Config describes the backend endpoint.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Options carries optional collaborators.
type Options struct {
	Logger  *slog.Logger
	Metrics *observability.Metrics
	// OnUnauthorized runs after a 401 cleared the stored token.
	OnUnauthorized func()
	// Transport overrides the HTTP round tripper.
	Transport http.RoundTripper
}

// Request is one backend call.
type Request struct {
	Method   string
	Path     string
	Query    map[string]string
	Body     any
	Resource string
	// Anonymous requests never carry the bearer token and their 401s are
	// ordinary server errors (used by login).
	Anonymous bool
}

// Response is a successful (2xx) backend answer.
type Response struct {
	Status int
	Body   []byte
}

// Client wraps resty with bearer injection and centralized 401 handling.
type Client struct {
	rest           *resty.Client
	tokens         TokenStore
	logger         *slog.Logger
	metrics        *observability.Metrics
	onUnauthorized func()
}

// New constructs a transport client.
func New(cfg Config, tokens TokenStore, opts Options) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if opts.Transport != nil {
		rest.SetTransport(opts.Transport)
	}

	c := &Client{
		rest:           rest,
		tokens:         tokens,
		logger:         logger,
		metrics:        opts.Metrics,
		onUnauthorized: opts.OnUnauthorized,
	}
	rest.OnBeforeRequest(c.guardPath)
	rest.OnBeforeRequest(c.stampRequestID)
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.rest.BaseURL
}

// Tokens exposes the token store used by the client.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// Do executes req and returns the 2xx response. Non-2xx answers become *Error;
// a 401 on an authenticated request clears the token, fires OnUnauthorized
// and returns shared.ErrUnauthorized.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}
	resource := req.Resource
	if resource == "" {
		resource = resourceLabel(req.Path)
	}

	r := c.rest.R().SetContext(ctx)
	if len(req.Query) > 0 {
		r.SetQueryParams(nonEmpty(req.Query))
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}
	if !req.Anonymous && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("apiclient: read token: %w", err)
		}
		if token != "" {
			r.SetAuthToken(token)
		}
	}

	start := time.Now()
	resp, err := r.Execute(method, req.Path)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, ErrInvalidPath) {
			c.logger.Error("refused request with placeholder id", slog.String("method", method), slog.String("path", req.Path))
			return nil, fmt.Errorf("%s %s: %w", method, req.Path, ErrInvalidPath)
		}
		c.metrics.ObserveRequest(resource, method, 0, elapsed)
		c.logger.Warn("api request failed", slog.String("method", method), slog.String("path", req.Path), slog.Any("error", err))
		return nil, &Error{Kind: KindTransport, Method: method, Path: req.Path, Err: err}
	}

	status := resp.StatusCode()
	c.metrics.ObserveRequest(resource, method, status, elapsed)
	c.logger.Debug("api request",
		slog.String("method", method),
		slog.String("path", req.Path),
		slog.Int("status", status),
		slog.String("request_id", resp.Request.Header.Get(requestIDHeader)),
		slog.Duration("elapsed", elapsed),
	)

	if status == http.StatusUnauthorized && !req.Anonymous {
		c.handleUnauthorized(ctx)
		return nil, fmt.Errorf("%s %s: %w", method, req.Path, shared.ErrUnauthorized)
	}
	if status < 200 || status >= 300 {
		apiErr := &Error{
			Kind:    KindServer,
			Method:  method,
			Path:    req.Path,
			Status:  status,
			Message: serverMessage(resp.Body()),
		}
		c.logger.Warn("api request rejected", slog.String("method", method), slog.String("path", req.Path), slog.Int("status", status), slog.String("message", apiErr.Message))
		return nil, apiErr
	}
	return &Response{Status: status, Body: resp.Body()}, nil
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	if c.tokens != nil {
		if err := c.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
			c.logger.Warn("clear token after 401", slog.Any("error", err))
		}
	}
	c.logger.Info("session expired, redirecting to login")
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func (c *Client) guardPath(_ *resty.Client, r *resty.Request) error {
	for _, segment := range strings.Split(r.URL, "/") {
		if placeholderSegments[segment] {
			return ErrInvalidPath
		}
	}
	return nil
}

func (c *Client) stampRequestID(_ *resty.Client, r *resty.Request) error {
	if r.Header.Get(requestIDHeader) == "" {
		r.SetHeader(requestIDHeader, uuid.NewString())
	}
	return nil
}

// resourceLabel derives the metrics label from a request path.
func resourceLabel(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "root"
	}
	parts := strings.Split(trimmed, "/")
	if parts[0] == "bodega" && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

func nonEmpty(query map[string]string) map[string]string {
	out := make(map[string]string, len(query))
	for k, v := range query {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}
