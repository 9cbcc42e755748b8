package service

import (
	"errors"
	"sync"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/gateway"
)

// tracker holds the bookkeeping every workflow shares: which operations are
// in flight, the last error and success messages, and whether the workflow
// was torn down. mu also guards the embedding service's own state.
//
// gen counts resets. An operation belongs to the generation it began in and
// its results are dropped once a reset has moved past it.
type tracker struct {
	mu      sync.Mutex
	ops     map[string]uint64
	gen     uint64
	closed  bool
	errMsg  string
	success string
}

// begin marks op as in flight and returns its generation. A second trigger
// of the same op is rejected.
func (t *tracker) begin(op string) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, domain.ErrClosed
	}
	if _, busy := t.ops[op]; busy {
		return 0, domain.ErrBusy
	}
	if t.ops == nil {
		t.ops = make(map[string]uint64)
	}
	t.ops[op] = t.gen
	return t.gen, nil
}

func (t *tracker) end(op string, gen uint64) {
	t.mu.Lock()
	if g, ok := t.ops[op]; ok && g == gen {
		delete(t.ops, op)
	}
	t.mu.Unlock()
}

// currentLocked reports why results of generation gen may no longer change
// state, or nil when they still may.
func (t *tracker) currentLocked(gen uint64) error {
	switch {
	case t.closed:
		return domain.ErrClosed
	case gen != t.gen:
		return domain.ErrStale
	}
	return nil
}

// failLocked records err for display and returns it. Results after Close or
// a reset are discarded.
func (t *tracker) failLocked(gen uint64, err error) error {
	if stale := t.currentLocked(gen); stale != nil {
		return stale
	}
	t.errMsg = displayMessage(err)
	t.success = ""
	return err
}

func (t *tracker) fail(gen uint64, err error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failLocked(gen, err)
}

// reject records a validation failure, which never waits on the network.
func (t *tracker) reject(err error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failLocked(t.gen, err)
}

// invalidateLocked starts a new generation: messages are cleared and
// operations still in flight neither count as loading nor block new ones.
func (t *tracker) invalidateLocked() {
	t.gen++
	t.ops = nil
	t.errMsg = ""
	t.success = ""
}

func (t *tracker) loadingLocked() bool { return len(t.ops) > 0 }

func (t *tracker) ClearError() {
	t.mu.Lock()
	t.errMsg = ""
	t.mu.Unlock()
}

func (t *tracker) ClearSuccess() {
	t.mu.Lock()
	t.success = ""
	t.mu.Unlock()
}

// Close tears the workflow down. Calls still in flight complete on the
// network but their results no longer change state.
func (t *tracker) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}

// displayMessage is the text shown to the user for err: the server's message
// for request errors, the sentinel text for validation conditions.
func displayMessage(err error) string {
	var reqErr *gateway.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return err.Error()
}
