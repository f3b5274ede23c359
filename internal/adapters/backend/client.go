package backend

// Package backend is the HTTP adapter for the storefront REST API.
// It surfaces non-2xx responses as *errors.HTTPError and network failures as *errors.TransportError;
// it never retries or caches.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	jmespath "github.com/jmespath-community/go-jmespath"
	apperrors "github.com/oasisnourish/storefront/internal/errors"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultTitleExpr      = "title"
	maxResponseBytes      = 1 << 20
	headerRequestID       = "X-Request-Id"
	defaultUserAgentValue = "oasis-storefront"
)

// Config captures what the adapter needs to reach the backend.
type Config struct {
	BaseURL string
	// Timeout bounds a single request when Client is not supplied.
	Timeout time.Duration
	// TitleExpr is a JMESPath expression selecting the user-facing message from an error body.
	TitleExpr string
	UserAgent string
	// Client is used as-is when set; its Jar carries the session cookies.
	Client *http.Client
	Paths  Paths
	Logger *slog.Logger
}

// Response is a successful (2xx) backend response.
type Response struct {
	Status int
	Body   []byte
}

// Client talks to the storefront backend.
type Client struct {
	baseURL   string
	titleExpr string
	userAgent string
	paths     Paths
	client    *http.Client
	logger    *slog.Logger
}

// NewClient builds a backend client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is required")
	}

	titleExpr := strings.TrimSpace(cfg.TitleExpr)
	if titleExpr == "" {
		titleExpr = defaultTitleExpr
	}
	if _, err := jmespath.Compile(titleExpr); err != nil {
		return nil, fmt.Errorf("compile error title expression %q: %w", titleExpr, err)
	}

	hc := cfg.Client
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:   baseURL,
		titleExpr: titleExpr,
		userAgent: fallbackString(strings.TrimSpace(cfg.UserAgent), defaultUserAgentValue),
		paths:     cfg.Paths.withDefaults(),
		client:    hc,
		logger:    logger,
	}, nil
}

// HTTPClient exposes the underlying client (and its cookie jar).
func (c *Client) HTTPClient() *http.Client { return c.client }

// Request sends one request to the backend. body is JSON-encoded when non-nil.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "encode %s %s body", method, path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "create %s %s request", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("error", err))
		return nil, &apperrors.TransportError{Method: method, Path: path, Cause: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "close backend response body", "error", cerr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &apperrors.TransportError{Method: method, Path: path, Cause: fmt.Errorf("read body: %w", err)}
	}

	c.logger.DebugContext(ctx, "backend",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apperrors.HTTPError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Title:  c.extractTitle(data),
			Body:   data,
		}
	}

	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// extractTitle evaluates the title expression against a JSON error body.
// Bodies that are not JSON, or expressions that select a non-string, yield "".
func (c *Client) extractTitle(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	v, err := jmespath.Search(c.titleExpr, doc)
	if err != nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// decodeMessage turns a success body into the backend's human-readable message.
// The backend answers with either a JSON string or plain text; structured or empty bodies yield "".
func decodeMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(trimmed, &msg); err == nil {
		return strings.TrimSpace(msg)
	}
	switch trimmed[0] {
	case '{', '[':
		return ""
	}
	return string(trimmed)
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
