package stream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"go.uber.org/zap/zaptest"
)

type plainRequests struct {
	base           string
	onUnauthorized func()
}

func (p plainRequests) NewRequest(ctx context.Context, method, path string) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, p.base+path, nil)
}

func (p plainRequests) HandleUnauthorized(method, path string) {
	if p.onUnauthorized != nil {
		p.onUnauthorized()
	}
}

// delayRecorder replaces the reconnect timer and records every delay.
type delayRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (d *delayRecorder) sleep(ctx context.Context, delay time.Duration) error {
	d.mu.Lock()
	d.delays = append(d.delays, delay)
	d.mu.Unlock()
	return ctx.Err()
}

func (d *delayRecorder) get() []time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]time.Duration(nil), d.delays...)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func waitDone(t *testing.T, c *Client) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("stream run did not exit")
	}
}

func writeEvent(w http.ResponseWriter, name, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	w.(http.Flusher).Flush()
}

func newClient(t *testing.T, url string, handler SnapshotHandler) *Client {
	t.Helper()
	c := New(Config{}, plainRequests{base: url}, handler, zaptest.NewLogger(t).Sugar())
	t.Cleanup(c.Stop)
	return c
}

func TestBackoffIsLinear(t *testing.T) {
	c := New(Config{}, plainRequests{}, nil, zaptest.NewLogger(t).Sugar())
	want := []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second}
	for i, w := range want {
		if got := c.Backoff(i + 1); got != w {
			t.Errorf("Backoff(%d) = %v, want %v", i+1, got, w)
		}
	}
}

func TestReconnectGivesUpAfterMaxAttempts(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	rec := &delayRecorder{}
	c := newClient(t, srv.URL, nil)
	c.sleep = rec.sleep

	c.Start(context.Background())
	waitDone(t, c)

	want := []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second, 8 * time.Second, 10 * time.Second}
	got := rec.get()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("delays = %v, want %v", got, want)
	}

	if n := requests.Load(); n != 6 {
		t.Errorf("connection attempts = %d, want 6 (initial + 5 reconnects)", n)
	}

	st := c.State()
	if !st.Fatal || st.Status != StatusDisconnected {
		t.Errorf("state = %+v, want fatal disconnected", st)
	}
	if st.LastError != msgFatal {
		t.Errorf("last error = %q", st.LastError)
	}
	if st.Attempt != st.MaxAttempts {
		t.Errorf("attempt = %d, want %d in the terminal state", st.Attempt, st.MaxAttempts)
	}

	time.Sleep(20 * time.Millisecond)
	if n := requests.Load(); n != 6 {
		t.Errorf("attempts continued after giving up: %d", n)
	}
}

func TestOpenResetsAttemptCounter(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		if n != 3 {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		writeEvent(w, DefaultEvent, `[]`)
	}))
	t.Cleanup(srv.Close)

	rec := &delayRecorder{}
	c := newClient(t, srv.URL, nil)
	c.sleep = rec.sleep

	c.Start(context.Background())
	waitDone(t, c)

	want := []time.Duration{2 * time.Second, 4 * time.Second, 2 * time.Second, 4 * time.Second, 6 * time.Second, 8 * time.Second, 10 * time.Second}
	if got := rec.get(); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("delays = %v, want %v", got, want)
	}
	if c.State().LastSnapshotAt.IsZero() {
		t.Error("snapshot from the successful connection was not recorded")
	}
}

func TestSnapshotsAppliedInOrderAndParseErrorsKeepConnection(t *testing.T) {
	var connections atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		connections.Add(1)
		w.Header().Set("Content-Type", "text/event-stream")
		writeEvent(w, DefaultEvent, `[{"id":1,"nomor":1,"username":"budi"}]`)
		writeEvent(w, "heartbeat", `{}`)
		writeEvent(w, DefaultEvent, `[{"id":1,"nomor":1},{"id":2,"nomor":2}]`)
		writeEvent(w, DefaultEvent, `{"meja": "broken"`)
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	var (
		mu        sync.Mutex
		snapshots [][]domain.Table
	)
	c := newClient(t, srv.URL, func(s domain.Snapshot) {
		mu.Lock()
		snapshots = append(snapshots, s.Tables)
		mu.Unlock()
	})

	c.Start(context.Background())

	waitFor(t, "parse error", func() bool { return c.State().LastError == msgParseFailed })

	mu.Lock()
	defer mu.Unlock()
	if len(snapshots) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snapshots))
	}
	if len(snapshots[0]) != 1 || snapshots[0][0].Username != "budi" {
		t.Errorf("first snapshot = %+v", snapshots[0])
	}
	if len(snapshots[1]) != 2 {
		t.Errorf("second snapshot = %+v", snapshots[1])
	}

	st := c.State()
	if st.Status != StatusConnected {
		t.Errorf("status = %s, want connected after parse error", st.Status)
	}
	if n := connections.Load(); n != 1 {
		t.Errorf("connections = %d, want 1", n)
	}
}

func TestStopCancelsPendingReconnect(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := New(Config{BackoffStep: time.Hour}, plainRequests{base: srv.URL}, nil, zaptest.NewLogger(t).Sugar())
	c.Start(context.Background())

	waitFor(t, "reconnecting", func() bool { return c.State().Status == StatusReconnecting })
	done := c.Done()

	stopped := make(chan struct{})
	go func() {
		c.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked on a pending reconnect timer")
	}

	select {
	case <-done:
	default:
		t.Error("run goroutine still alive after Stop")
	}

	if c.State().Status != StatusDisconnected {
		t.Errorf("status = %s after Stop", c.State().Status)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}
}

func TestStartClosesPriorConnection(t *testing.T) {
	var active, total atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		active.Add(1)
		total.Add(1)
		defer active.Add(-1)
		w.Header().Set("Content-Type", "text/event-stream")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	c := newClient(t, srv.URL, nil)

	c.Start(context.Background())
	waitFor(t, "first connection", func() bool { return c.State().Status == StatusConnected })

	c.Start(context.Background())
	waitFor(t, "second connection", func() bool { return total.Load() == 2 && c.State().Status == StatusConnected })
	waitFor(t, "single active connection", func() bool { return active.Load() == 1 })

	c.Stop()
	waitFor(t, "no active connection", func() bool { return active.Load() == 0 })
}

func TestNoHandlerCallsAfterStop(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		writeEvent(w, DefaultEvent, `[]`)
		select {
		case <-release:
			writeEvent(w, DefaultEvent, `[]`)
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	var calls atomic.Int32
	c := newClient(t, srv.URL, func(domain.Snapshot) { calls.Add(1) })

	c.Start(context.Background())
	waitFor(t, "first snapshot", func() bool { return calls.Load() == 1 })

	c.Stop()
	time.Sleep(20 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("handler called %d times, want 1", n)
	}
}

func TestUnauthorizedClearsSessionWithoutReconnecting(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	var (
		c       *Client
		cleared atomic.Int32
	)
	requests401 := plainRequests{base: srv.URL, onUnauthorized: func() {
		cleared.Add(1)
		// session hooks stop the stream from inside the teardown
		c.Stop()
	}}
	c = New(Config{}, requests401, nil, zaptest.NewLogger(t).Sugar())
	t.Cleanup(c.Stop)

	rec := &delayRecorder{}
	c.sleep = rec.sleep

	c.Start(context.Background())
	waitDone(t, c)
	waitFor(t, "session teardown", func() bool { return cleared.Load() == 1 })

	if n := requests.Load(); n != 1 {
		t.Errorf("connection attempts = %d, want 1", n)
	}
	if d := rec.get(); len(d) != 0 {
		t.Errorf("reconnect delays = %v, want none", d)
	}

	st := c.State()
	if st.Status != StatusDisconnected || st.Fatal || st.LastError != msgUnauthorized {
		t.Errorf("state = %+v", st)
	}
}
