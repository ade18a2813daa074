// Package worksync is a typed client for the WorkSync REST backend.
package worksync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
)

const (
	// TokenHeader carries the bearer token on every authenticated call.
	TokenHeader = "auth-token"

	requestIDHeader = "X-Request-ID"
	defaultTimeout  = 30 * time.Second
	maxBodyBytes    = 4 << 20
)

// APIError is a non-2xx backend answer. 401 and 403 unwrap to
// domain.ErrUnauthorized and domain.ErrForbidden, 404 to domain.ErrNotFound.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("worksync api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("worksync api: %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

// Client talks to one WorkSync backend. Authenticated calls take their token
// from tokens on every request so a logout takes effect immediately.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenSource
	log     zerolog.Logger

	onUnauthorized func(rejected string)
}

// NewClient returns a client for baseURL. A non-positive timeout falls back to
// 30 seconds.
func NewClient(baseURL string, tokens ports.TokenSource, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// OnUnauthorized registers fn to run when the backend rejects the stored
// token. fn receives the rejected token and runs on its own goroutine. A
// rejection of a token that has since been replaced is not reported.
func (c *Client) OnUnauthorized(fn func(rejected string)) {
	c.onUnauthorized = fn
}

// call performs an authenticated JSON request with the stored token.
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}
	return c.observe(ctx, token, c.do(ctx, method, path, token, in, out))
}

func (c *Client) token(ctx context.Context) (string, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return "", domain.ErrNoSession
	}
	return token, nil
}

// observe fires the unauthorized hook when sent was rejected and is still
// the stored token.
func (c *Client) observe(ctx context.Context, sent string, err error) error {
	if !errors.Is(err, domain.ErrUnauthorized) || c.onUnauthorized == nil {
		return err
	}
	current, terr := c.tokens.Token(context.WithoutCancel(ctx))
	if terr != nil || current != sent {
		c.log.Debug().Msg("ignoring rejection of a replaced token")
		return err
	}
	go c.onUnauthorized(sent)
	return err
}

// do performs a JSON request. token may be empty for anonymous endpoints.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", req.Method, req.URL.Path, err)
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Str("request_id", req.Header.Get(requestIDHeader)).
		Dur("latency", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// parseError reads {"error": ...}, {"message": ...} or a plain text body.
func parseError(status int, raw []byte) error {
	apiErr := &APIError{Status: status}
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		apiErr.Message = envelope.Error
		if apiErr.Message == "" {
			apiErr.Message = envelope.Message
		}
	}
	if apiErr.Message == "" {
		text := strings.TrimSpace(string(raw))
		if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "<") {
			apiErr.Message = text
		}
	}
	return apiErr
}

var _ ports.Backend = (*Client)(nil)
