// Package stream keeps one live server-push connection to the table stream
// and drives its reconnection policy as an explicit state machine:
//
//	disconnected -> connecting -> connected -> reconnecting(n) -> ... -> disconnected (fatal)
//
// A single run goroutine owns the connection, applies snapshots in receipt
// order and waits out the reconnect delays.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"go.uber.org/zap"
)

const (
	DefaultPath        = "/meja/admin/stream"
	DefaultEvent       = "meja-update"
	DefaultMaxAttempts = 5
	DefaultBackoffStep = 2 * time.Second
)

var (
	errStreamEnded  = errors.New("stream closed by server")
	errUnauthorized = errors.New("stream rejected the session")
)

type Config struct {
	Path        string
	Event       string
	MaxAttempts int
	BackoffStep time.Duration
}

// RequestBuilder creates authenticated requests against the backend and
// tears the session down when the backend rejects it.
type RequestBuilder interface {
	NewRequest(ctx context.Context, method, path string) (*http.Request, error)
	HandleUnauthorized(method, path string)
}

// SnapshotHandler receives every decoded snapshot. It runs on the stream
// goroutine and must not call Start or Stop.
type SnapshotHandler func(domain.Snapshot)

type Client struct {
	cfg      Config
	requests RequestBuilder
	http     *http.Client
	handler  SnapshotHandler
	logger   *zap.SugaredLogger

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time

	lifecycle sync.Mutex // serializes Start and Stop

	mu     sync.RWMutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

func New(cfg Config, requests RequestBuilder, handler SnapshotHandler, logger *zap.SugaredLogger) *Client {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.Event == "" {
		cfg.Event = DefaultEvent
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BackoffStep <= 0 {
		cfg.BackoffStep = DefaultBackoffStep
	}

	return &Client{
		cfg:      cfg,
		requests: requests,
		// no client timeout: the response body stays open for the life of the connection
		http:    &http.Client{},
		handler: handler,
		logger:  logger,
		sleep:   sleepContext,
		now:     time.Now,
		state:   State{Status: StatusDisconnected, MaxAttempts: cfg.MaxAttempts},
	}
}

// Backoff is the delay before reconnect attempt n (1-based): linear, not exponential.
func (c *Client) Backoff(n int) time.Duration {
	return c.cfg.BackoffStep * time.Duration(n)
}

// Start opens the stream. Any connection opened by a previous Start is closed
// first, and the attempt counter and fatal flag are reset.
func (c *Client) Start(ctx context.Context) {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	c.mu.Lock()
	c.cancel = cancel
	c.done = done
	c.state = State{
		Status:         StatusConnecting,
		MaxAttempts:    c.cfg.MaxAttempts,
		LastSnapshotAt: c.state.LastSnapshotAt,
	}
	c.mu.Unlock()

	go c.run(runCtx, done)
}

// Stop closes the active connection and cancels any pending reconnect. When
// Stop returns no snapshot handler call is in progress or will follow.
func (c *Client) Stop() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.stopLocked()
}

func (c *Client) stopLocked() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done

	c.mu.Lock()
	c.state.Status = StatusDisconnected
	c.mu.Unlock()
}

func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Done is closed when the current run exits, either stopped or after giving
// up. It returns nil when the client was never started.
func (c *Client) Done() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.done
}

func (c *Client) run(ctx context.Context, done chan struct{}) {
	unauthorized := false
	// The session teardown runs after done is closed: its hooks may call Stop.
	defer func() {
		if unauthorized {
			c.requests.HandleUnauthorized(http.MethodGet, c.cfg.Path)
		}
	}()
	defer close(done)

	for {
		c.setStatus(StatusConnecting)

		err := c.connect(ctx)
		if ctx.Err() != nil {
			c.setStatus(StatusDisconnected)
			return
		}

		if errors.Is(err, errUnauthorized) {
			c.mu.Lock()
			c.state.Status = StatusDisconnected
			c.state.LastError = msgUnauthorized
			c.mu.Unlock()

			c.logger.Warnw("table stream unauthorized, not reconnecting", "path", c.cfg.Path)
			unauthorized = true
			return
		}

		c.mu.Lock()
		n := c.state.Attempt + 1
		if n > c.cfg.MaxAttempts {
			c.state.Status = StatusDisconnected
			c.state.Fatal = true
			c.state.LastError = msgFatal
			attempts := c.state.Attempt
			c.mu.Unlock()

			c.logger.Errorw("table stream gave up", "attempts", attempts, "error", err)
			return
		}
		c.state.Attempt = n
		c.state.Status = StatusReconnecting
		c.state.LastError = fmt.Sprintf("Connection lost. Reconnecting... (%d/%d)", n, c.cfg.MaxAttempts)
		c.mu.Unlock()

		delay := c.Backoff(n)
		c.logger.Warnw("table stream lost, reconnecting", "attempt", n, "max_attempts", c.cfg.MaxAttempts, "delay", delay, "error", err)

		if err := c.sleep(ctx, delay); err != nil {
			c.setStatus(StatusDisconnected)
			return
		}
	}
}

func (c *Client) connect(ctx context.Context) error {
	req, err := c.requests.NewRequest(ctx, http.MethodGet, c.cfg.Path)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return errUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream responded with status %d", resp.StatusCode)
	}

	c.mu.Lock()
	c.state.Status = StatusConnected
	c.state.Attempt = 0
	c.state.LastError = ""
	c.mu.Unlock()

	c.logger.Infow("connected to table stream", "path", c.cfg.Path)

	err = readEvents(resp.Body, c.dispatch)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, io.EOF) {
		return errStreamEnded
	}
	return fmt.Errorf("failed to read stream: %w", err)
}

func (c *Client) dispatch(ev event) {
	if ev.name != c.cfg.Event {
		c.logger.Debugw("ignoring stream event", "event", ev.name)
		return
	}

	tables, err := decodeSnapshot(ev.data)
	if err != nil {
		c.logger.Warnw("failed to parse table snapshot", "error", err)
		c.mu.Lock()
		c.state.LastError = msgParseFailed
		c.mu.Unlock()
		return
	}

	now := c.now()
	if c.handler != nil {
		c.handler(domain.Snapshot{Tables: tables, ReceivedAt: now})
	}

	c.mu.Lock()
	c.state.LastSnapshotAt = now
	c.state.LastError = ""
	c.mu.Unlock()
}

// ParseError is a snapshot payload that is not a well-formed table collection.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "invalid table snapshot: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

func decodeSnapshot(data []byte) ([]domain.Table, error) {
	var tables []domain.Table
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, &ParseError{Err: err}
	}
	if tables == nil {
		return nil, &ParseError{Err: errors.New("payload is not an array")}
	}
	if err := domain.ValidateTables(tables); err != nil {
		return nil, &ParseError{Err: err}
	}
	return tables, nil
}

func (c *Client) setStatus(s Status) {
	c.mu.Lock()
	c.state.Status = s
	c.mu.Unlock()
}

// sleepContext waits d or until ctx ends; the timer is always released.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
