// Package client wraps the court reservation backend endpoints used by the
// admin console.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/pkg/config"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
	"github.com/tennisclub/court-admin/pkg/middleware/requestid"
)

const maxResponseBytes = 4 << 20

// Result is the outcome of a backend call that reached the server. Success is
// false when the server answered with a non-2xx status or an error field; Error
// then carries the server message, if any.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Status  int    `json:"-"`
}

// Message returns the server error or the fallback when the server gave none.
func (r Result[T]) Message(fallback string) string {
	if strings.TrimSpace(r.Error) != "" {
		return r.Error
	}
	return fallback
}

// Observer receives timing for every upstream call.
type Observer interface {
	ObserveUpstream(route, method, outcome string, duration time.Duration)
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithObserver attaches an upstream metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// Client talks JSON to the reservation backend.
type Client struct {
	baseURL  string
	token    string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// New builds a backend client from configuration.
func New(cfg config.BackendConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type tokenKey struct{}

// WithToken forwards a caller supplied bearer token on calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token stored by WithToken.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type errorBody struct {
	Success *bool           `json:"success"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

// serverMessage pulls the human readable failure out of a backend body and
// reports whether the body marks the call as failed. The error field is
// either a plain string or an object with a message; an explicit
// "success": false fails the call even without one.
func serverMessage(raw []byte) (string, bool) {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", false
	}
	rejected := body.Success != nil && !*body.Success
	if len(body.Error) > 0 && string(body.Error) != "null" {
		var s string
		if err := json.Unmarshal(body.Error, &s); err == nil {
			if s != "" {
				return s, true
			}
			return body.Message, rejected
		}
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body.Error, &obj); err == nil && obj.Message != "" {
			return obj.Message, true
		}
		return string(body.Error), true
	}
	if rejected {
		return body.Message, true
	}
	return body.Message, false
}

// call performs one request. route is a low-cardinality label for metrics.
func call[T any](ctx context.Context, c *Client, route, method, path string, query url.Values, body interface{}) (Result[T], error) {
	var result Result[T]

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return result, fmt.Errorf("encode %s body: %w", route, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return result, fmt.Errorf("build %s request: %w", route, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := TokenFromContext(ctx)
	if token == "" {
		token = c.token
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header(), id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(route, method, "transport_error", start)
		c.logger.Warn("backend call failed", zap.String("route", route), zap.String("method", method), zap.Error(err))
		return result, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.observe(route, method, "transport_error", start)
		return result, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "read backend response")
	}

	result.Status = resp.StatusCode
	msg, hasError := serverMessage(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || hasError {
		c.observe(route, method, "rejected", start)
		result.Error = msg
		c.logger.Info("backend rejected call", zap.String("route", route), zap.Int("status", resp.StatusCode), zap.String("error", msg))
		return result, nil
	}

	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &result.Data); err != nil {
			c.observe(route, method, "decode_error", start)
			return result, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "invalid backend response")
		}
	}

	c.observe(route, method, "success", start)
	result.Success = true
	return result, nil
}

func (c *Client) observe(route, method, outcome string, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstream(route, method, outcome, time.Since(start))
}

// mapResult converts the payload of a successful result.
func mapResult[S, T any](in Result[S], fn func(S) T) Result[T] {
	out := Result[T]{Success: in.Success, Error: in.Error, Status: in.Status}
	if in.Success {
		out.Data = fn(in.Data)
	}
	return out
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return strings.Join(parts, ",")
}
