package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/queue"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"
)

func TestFetchSubmittedKeepsOnlySubmitted(t *testing.T) {
	r := newFakeCheckoutRepo()
	r.submitted = []domain.Checkout{
		{ID: "1", IsSubmitted: true, TotalPrice: decimal.NewFromInt(20000)},
		{ID: "2", IsSubmitted: false},
		{ID: "3", IsSubmitted: true},
	}

	svc := NewAdminCheckoutService(r, nil, zaptest.NewLogger(t).Sugar())
	if err := svc.FetchSubmittedCheckouts(context.Background()); err != nil {
		t.Fatal(err)
	}

	v := svc.View()
	if len(v.Checkouts) != 2 || v.Checkouts[0].ID != "1" || v.Checkouts[1].ID != "3" {
		t.Fatalf("checkouts = %+v", v.Checkouts)
	}
	if v.Checkouts[0].FormattedTotal != "Rp 20.000" {
		t.Errorf("formatted total = %q", v.Checkouts[0].FormattedTotal)
	}
}

func TestProcessCheckoutRequiresConfirmation(t *testing.T) {
	r := newFakeCheckoutRepo()
	r.submitted = []domain.Checkout{{ID: "1", IsSubmitted: true}}

	broker := &fakeBroker{}
	svc := NewAdminCheckoutService(r, broker, zaptest.NewLogger(t).Sugar())
	ctx := context.Background()
	svc.FetchSubmittedCheckouts(ctx)

	if err := svc.ProcessCheckout(ctx, "1", Confirmation(false)); !errors.Is(err, domain.ErrNotConfirmed) {
		t.Fatalf("err = %v", err)
	}
	if r.count("process") != 0 {
		t.Fatal("processed without confirmation")
	}

	if err := svc.ProcessCheckout(ctx, "1", Confirmation(true)); err != nil {
		t.Fatal(err)
	}
	if r.count("list_submitted") != 2 {
		t.Errorf("list calls = %d, want re-list after processing", r.count("list_submitted"))
	}
	if v := svc.View(); len(v.Checkouts) != 0 || v.Success == "" {
		t.Errorf("view = %+v", v)
	}
	if got := broker.eventTypes(t, queue.QueueCheckoutEvents); len(got) != 1 || got[0] != domain.EventCheckoutProcessed {
		t.Errorf("events = %v", got)
	}
}

func TestResetClearsProcessingQueue(t *testing.T) {
	r := newFakeCheckoutRepo()
	r.submitted = []domain.Checkout{{ID: "1", IsSubmitted: true}}

	svc := NewAdminCheckoutService(r, nil, zaptest.NewLogger(t).Sugar())
	ctx := context.Background()
	svc.FetchSubmittedCheckouts(ctx)
	svc.ProcessCheckout(ctx, "1", nil)

	svc.Reset()
	if v := svc.View(); len(v.Checkouts) != 0 || v.Error != "" || v.Success != "" {
		t.Errorf("view after reset = %+v", v)
	}
}
