package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/gateway"
	"github.com/Beka01247/restaurant-client/internal/queue"
	"github.com/Beka01247/restaurant-client/internal/session"
	"github.com/shopspring/decimal"
)

var errNotFound = &gateway.RequestError{Status: 404, Message: "Checkout not found"}

type published struct {
	queue   string
	message []byte
}

type fakeBroker struct {
	mu   sync.Mutex
	sent []published
	// block, when set, holds every Publish until it is closed
	block chan struct{}
}

func (b *fakeBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	if b.block != nil {
		select {
		case <-b.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, published{queue: queueName, message: message})
	return nil
}

func (b *fakeBroker) Subscribe(context.Context, string, queue.MessageHandler) error { return nil }
func (b *fakeBroker) Ping() error                                                  { return nil }
func (b *fakeBroker) Close() error                                                 { return nil }

func (b *fakeBroker) eventTypes(t *testing.T, queueName string) []string {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var types []string
	for _, p := range b.sent {
		if p.queue != queueName {
			continue
		}
		var ev struct {
			EventType string `json:"event_type"`
		}
		if err := json.Unmarshal(p.message, &ev); err != nil {
			t.Fatalf("published invalid json: %v", err)
		}
		types = append(types, ev.EventType)
	}
	return types
}

// fakeCheckoutRepo is an in-memory backend. Hooks run before the matching
// call returns and may block.
type fakeCheckoutRepo struct {
	mu sync.Mutex

	userID     int64
	items      []domain.CartItem
	checkout   *domain.Checkout
	findErr    error
	totalPrice decimal.Decimal
	submitted  []domain.Checkout
	// findNull answers a missing checkout with an empty body instead of 404
	findNull bool

	beforeGet    func()
	beforeSubmit func()

	calls            map[string]int
	lastCreateCartID domain.ID
	lastDelta        int
}

func newFakeCheckoutRepo() *fakeCheckoutRepo {
	return &fakeCheckoutRepo{userID: 3, calls: make(map[string]int)}
}

func (r *fakeCheckoutRepo) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func (r *fakeCheckoutRepo) record(name string) {
	r.mu.Lock()
	r.calls[name]++
	r.mu.Unlock()
}

func (r *fakeCheckoutRepo) CurrentUser(context.Context) (*domain.User, error) {
	r.record("me")
	return &domain.User{ID: r.userID, Username: "budi"}, nil
}

func (r *fakeCheckoutRepo) CartItems(context.Context, int64) ([]domain.CartItem, error) {
	r.record("items")
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.CartItem(nil), r.items...), nil
}

func (r *fakeCheckoutRepo) FindByUser(context.Context, int64) (*domain.Checkout, error) {
	r.record("find")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.checkout == nil && r.findNull {
		return nil, nil
	}
	if r.checkout == nil {
		return nil, errNotFound
	}
	c := *r.checkout
	return &c, nil
}

func (r *fakeCheckoutRepo) Create(_ context.Context, cartID domain.ID) (*domain.Checkout, error) {
	r.record("create")
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastCreateCartID = cartID
	r.checkout = &domain.Checkout{ID: "31", CartID: cartID, UserID: "3"}
	c := *r.checkout
	return &c, nil
}

func (r *fakeCheckoutRepo) GetByID(_ context.Context, id domain.ID) (*domain.Checkout, error) {
	r.record("get")
	if r.beforeGet != nil {
		r.beforeGet()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.checkout == nil || r.checkout.ID != id {
		return nil, errNotFound
	}
	c := *r.checkout
	c.Items = append([]domain.CartItem(nil), r.items...)
	c.TotalPrice = r.totalPrice
	return &c, nil
}

func (r *fakeCheckoutRepo) UpdateItemQuantity(_ context.Context, _, itemID domain.ID, delta int) error {
	r.record("update")
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastDelta = delta
	for i := range r.items {
		if r.items[i].ID == itemID {
			r.items[i].Quantity += delta
		}
	}
	return nil
}

func (r *fakeCheckoutRepo) Submit(context.Context, domain.ID) error {
	r.record("submit")
	if r.beforeSubmit != nil {
		r.beforeSubmit()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkout.IsSubmitted = true
	return nil
}

func (r *fakeCheckoutRepo) Cancel(context.Context, domain.ID) error {
	r.record("cancel")
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkout = nil
	return nil
}

func (r *fakeCheckoutRepo) ListSubmitted(context.Context) ([]domain.Checkout, error) {
	r.record("list_submitted")
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Checkout(nil), r.submitted...), nil
}

func (r *fakeCheckoutRepo) Process(_ context.Context, id domain.ID) error {
	r.record("process")
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.submitted[:0]
	for _, c := range r.submitted {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	r.submitted = kept
	return nil
}

func cartItem(id string, price int64, qty int) domain.CartItem {
	return domain.CartItem{
		ID:       domain.ID(id),
		CartID:   "9",
		MenuID:   domain.ID("m" + id),
		Menu:     domain.MenuSnapshot{Name: "Nasi Goreng " + id, Price: decimal.NewFromInt(price)},
		Quantity: qty,
	}
}

func loggedIn(t *testing.T) *session.Session {
	t.Helper()
	sess := session.New(nil)
	if err := sess.Login("token-1", "budi", "user"); err != nil {
		t.Fatal(err)
	}
	return sess
}
