package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/queue"
	"go.uber.org/zap/zaptest"
)

type fakeTableRepo struct {
	mu     sync.Mutex
	tables []domain.Table
	calls  []string
}

func (r *fakeTableRepo) record(call string) {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
}

func (r *fakeTableRepo) List(context.Context) ([]domain.Table, error) {
	r.record("list")
	return r.tables, nil
}

func (r *fakeTableRepo) Assign(context.Context, int, string) error {
	r.record("assign")
	return nil
}

func (r *fakeTableRepo) CompleteOrder(context.Context, int) error {
	r.record("complete")
	return nil
}

func (r *fakeTableRepo) Create(context.Context, int) error {
	r.record("create")
	return nil
}

func (r *fakeTableRepo) Update(context.Context, int, int) error {
	r.record("update")
	return nil
}

func (r *fakeTableRepo) Delete(context.Context, int) error {
	r.record("delete")
	return nil
}

func snapshot(tables ...domain.Table) domain.Snapshot {
	return domain.Snapshot{Tables: tables, ReceivedAt: time.Now()}
}

// drain closes svc and waits until every queued occupancy event was handed
// to the broker.
func drain(t *testing.T, svc *TableService) {
	t.Helper()
	svc.Close()
	select {
	case <-svc.drained:
	case <-time.After(5 * time.Second):
		t.Fatal("occupancy events not drained")
	}
}

func TestApplySnapshotPublishesOccupancyChanges(t *testing.T) {
	broker := &fakeBroker{}
	svc := NewTableService(&fakeTableRepo{}, loggedIn(t), broker, zaptest.NewLogger(t).Sugar())

	svc.ApplySnapshot(snapshot(domain.Table{ID: 1, Number: 1, Username: "ani"}, domain.Table{ID: 2, Number: 2}))
	svc.ApplySnapshot(snapshot(domain.Table{ID: 1, Number: 1}, domain.Table{ID: 2, Number: 2, Username: "budi"}))
	svc.ApplySnapshot(snapshot(domain.Table{ID: 1, Number: 1}))
	drain(t, svc)

	got := broker.eventTypes(t, queue.QueueTableOccupancy)
	want := []string{domain.EventTableReleased, domain.EventTableOccupied, domain.EventTableReleased}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestMyTableFollowsSnapshots(t *testing.T) {
	svc := NewTableService(&fakeTableRepo{}, loggedIn(t), nil, zaptest.NewLogger(t).Sugar())

	if _, ok := svc.MyTable(); ok {
		t.Fatal("table found before any snapshot")
	}

	svc.ApplySnapshot(snapshot(domain.Table{ID: 1, Number: 4, Username: "budi"}, domain.Table{ID: 2, Number: 7, Username: "budi"}))
	if mine, ok := svc.MyTable(); !ok || mine.Number != 4 {
		t.Errorf("my table = %+v, %v; want first match", mine, ok)
	}

	svc.ApplySnapshot(snapshot(domain.Table{ID: 1, Number: 4}))
	if _, ok := svc.MyTable(); ok {
		t.Error("my table still set after release")
	}
}

func TestJoinTableDoesNotUpdateLocally(t *testing.T) {
	r := &fakeTableRepo{}
	svc := NewTableService(r, loggedIn(t), nil, zaptest.NewLogger(t).Sugar())
	svc.ApplySnapshot(snapshot(domain.Table{ID: 1, Number: 1}))

	if err := svc.JoinTable(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, ok := svc.MyTable(); ok {
		t.Error("join marked the table before the stream reported it")
	}
	if len(r.calls) != 1 || r.calls[0] != "assign" {
		t.Errorf("calls = %v", r.calls)
	}
}

func TestDestructiveTableActionsNeedConfirmation(t *testing.T) {
	r := &fakeTableRepo{}
	svc := NewTableService(r, loggedIn(t), nil, zaptest.NewLogger(t).Sugar())
	svc.ApplySnapshot(snapshot(domain.Table{ID: 1, Number: 1, Username: "budi"}, domain.Table{ID: 2, Number: 2}))
	ctx := context.Background()

	if err := svc.LeaveTable(ctx, 1, nil); !errors.Is(err, domain.ErrNotConfirmed) {
		t.Errorf("leave err = %v", err)
	}
	if err := svc.DeleteTable(ctx, 2, Confirmation(false)); !errors.Is(err, domain.ErrNotConfirmed) {
		t.Errorf("delete err = %v", err)
	}
	if err := svc.DeleteTable(ctx, 1, Confirmation(true)); !errors.Is(err, domain.ErrTableOccupied) {
		t.Errorf("delete occupied err = %v", err)
	}
	if len(r.calls) != 0 {
		t.Fatalf("requests sent: %v", r.calls)
	}

	if err := svc.DeleteTable(ctx, 2, Confirmation(true)); err != nil {
		t.Fatal(err)
	}
	if err := svc.LeaveTable(ctx, 1, Confirmation(true)); err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != 2 {
		t.Errorf("calls = %v", r.calls)
	}
}

func TestFetchAllReplacesState(t *testing.T) {
	r := &fakeTableRepo{tables: []domain.Table{{ID: 1, Number: 1}, {ID: 2, Number: 2}}}
	svc := NewTableService(r, loggedIn(t), nil, zaptest.NewLogger(t).Sugar())
	svc.ApplySnapshot(snapshot(domain.Table{ID: 9, Number: 9}))

	if err := svc.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if tables := svc.Tables(); len(tables) != 2 {
		t.Errorf("tables = %+v", tables)
	}
	if svc.LastUpdated().IsZero() {
		t.Error("last updated not recorded")
	}
}

func TestInvalidTableNumber(t *testing.T) {
	r := &fakeTableRepo{}
	svc := NewTableService(r, loggedIn(t), nil, zaptest.NewLogger(t).Sugar())

	if err := svc.CreateTable(context.Background(), 0); !errors.Is(err, domain.ErrInvalidTable) {
		t.Errorf("err = %v", err)
	}
	if v := svc.View(); v.Error != domain.ErrInvalidTable.Error() {
		t.Errorf("view error = %q", v.Error)
	}
	if len(r.calls) != 0 {
		t.Errorf("calls = %v", r.calls)
	}
}

func TestApplySnapshotDoesNotWaitForBroker(t *testing.T) {
	broker := &fakeBroker{block: make(chan struct{})}
	svc := NewTableService(&fakeTableRepo{}, loggedIn(t), broker, zaptest.NewLogger(t).Sugar())

	applied := make(chan struct{})
	go func() {
		defer close(applied)
		svc.ApplySnapshot(snapshot(domain.Table{ID: 1, Number: 1}))
		for i := 0; i < 5; i++ {
			name := ""
			if i%2 == 0 {
				name = "budi"
			}
			svc.ApplySnapshot(snapshot(domain.Table{ID: 1, Number: 1, Username: name}))
		}
	}()

	select {
	case <-applied:
	case <-time.After(2 * time.Second):
		t.Fatal("ApplySnapshot blocked on a stalled broker")
	}
	if mine, ok := svc.MyTable(); !ok || mine.Number != 1 {
		t.Errorf("my table = %+v, %v; want latest snapshot applied", mine, ok)
	}

	close(broker.block)
	drain(t, svc)
	if got := broker.eventTypes(t, queue.QueueTableOccupancy); len(got) != 5 {
		t.Errorf("published %d events, want 5", len(got))
	}
}

func TestResetForgetsSnapshot(t *testing.T) {
	broker := &fakeBroker{}
	svc := NewTableService(&fakeTableRepo{}, loggedIn(t), broker, zaptest.NewLogger(t).Sugar())

	svc.ApplySnapshot(snapshot(domain.Table{ID: 1, Number: 1, Username: "budi"}))
	svc.CreateTable(context.Background(), 0)
	svc.Reset()

	v := svc.View()
	if len(v.Tables) != 0 || v.LastUpdated != nil || v.MyTable != nil || v.Error != "" {
		t.Errorf("view after reset = %+v", v)
	}

	// the first snapshot after a reset is a baseline, not a change
	svc.ApplySnapshot(snapshot(domain.Table{ID: 1, Number: 1}))
	drain(t, svc)
	if got := broker.eventTypes(t, queue.QueueTableOccupancy); len(got) != 0 {
		t.Errorf("published %v after reset", got)
	}
}
