// Package gateway executes every call to the restaurant backend: it injects
// the bearer token, normalizes errors and enforces the 401 teardown.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Beka01247/restaurant-client/internal/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxErrorBody = 64 << 10

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
	logger  *zap.SugaredLogger
}

func New(cfg Config, sess *session.Session, logger *zap.SugaredLogger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: sess,
		logger:  logger,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Session() *session.Session { return c.session }

// Do sends a JSON request and decodes a JSON answer into out. A nil out
// discards the body. A 2xx body that does not decode into out is an error.
func (c *Client) Do(ctx context.Context, method, path string, body any, authRequired bool, out any) error {
	resp, err := c.send(ctx, method, path, body, authRequired)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}

	return nil
}

// DoText sends a request whose answer is plain text.
func (c *Client) DoText(ctx context.Context, method, path string, body any, authRequired bool) (string, error) {
	resp, err := c.send(ctx, method, path, body, authRequired)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Method: method, Path: path, Err: err}
	}

	return string(b), nil
}

// NewRequest builds an authenticated request against the backend without
// sending it. The stream client uses it to open long-lived connections.
func (c *Client) NewRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}

// HandleUnauthorized performs the hard logout: all session data is dropped
// and the session's clear hooks run.
func (c *Client) HandleUnauthorized(method, path string) {
	c.logger.Warnw("unauthorized response, clearing session", "method", method, "path", path)
	if err := c.session.Clear(); err != nil {
		c.logger.Errorw("failed to clear session", "error", err)
	}
}

func (c *Client) send(ctx context.Context, method, path string, body any, authRequired bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authRequired {
		c.authorize(req)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Errorw("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}

	c.logger.Debugw("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		reqErr := readError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			c.HandleUnauthorized(method, path)
		}
		return nil, reqErr
	}

	return resp, nil
}

func (c *Client) authorize(req *http.Request) {
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func readError(resp *http.Response) *RequestError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	text := strings.TrimSpace(string(b))

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &payload); err == nil && payload.Message != "" {
		text = payload.Message
	}

	if text == "" {
		text = fmt.Sprintf("HTTP error %d", resp.StatusCode)
	}

	return &RequestError{Status: resp.StatusCode, Message: text}
}
