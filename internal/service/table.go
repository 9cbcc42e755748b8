package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/queue"
	"github.com/Beka01247/restaurant-client/internal/repo"
	"github.com/Beka01247/restaurant-client/internal/session"
	"go.uber.org/zap"
)

const (
	opFetchTables = "fetch_tables"
	opJoin        = "join"
	opLeave       = "leave"
	opCreateTable = "create_table"
	opUpdateTable = "update_table"
	opDeleteTable = "delete_table"
)

// occupancyBacklog bounds the events waiting for the broker. Beyond it new
// events are dropped rather than stalling snapshot application.
const occupancyBacklog = 256

// TableService holds the latest table snapshot and the assignment actions.
// Occupancy is only ever changed by snapshots: joins and leaves wait for the
// stream to report them.
type TableService struct {
	tracker

	repo    repo.TableRepository
	session *session.Session
	events  publisher
	logger  *zap.SugaredLogger
	now     func() time.Time

	tables      []domain.Table
	lastUpdated time.Time
	hasSnapshot bool

	occupancy chan domain.TableOccupancyEvent
	drained   chan struct{}
}

func NewTableService(tableRepo repo.TableRepository, sess *session.Session, broker queue.Broker, logger *zap.SugaredLogger) *TableService {
	s := &TableService{
		repo:      tableRepo,
		session:   sess,
		events:    publisher{broker: broker, logger: logger, now: time.Now},
		logger:    logger,
		now:       time.Now,
		occupancy: make(chan domain.TableOccupancyEvent, occupancyBacklog),
		drained:   make(chan struct{}),
	}
	go s.publishOccupancy()
	return s
}

// ApplySnapshot replaces the table state wholesale. Occupancy changes against
// the previous snapshot are queued for publishing; the broker is never
// waited on here.
func (s *TableService) ApplySnapshot(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.applyLocked(snap)
}

func (s *TableService) applyLocked(snap domain.Snapshot) {
	var changes []domain.TableOccupancyEvent
	if s.hasSnapshot {
		changes = diffOccupancy(s.tables, snap.Tables, snap.ReceivedAt)
	}
	s.tables = snap.Tables
	s.lastUpdated = snap.ReceivedAt
	s.hasSnapshot = true

	for _, ev := range changes {
		select {
		case s.occupancy <- ev:
		default:
			s.logger.Warnw("occupancy backlog full, dropping event", "event_type", ev.EventType, "table_number", ev.TableNumber)
		}
	}
}

func (s *TableService) publishOccupancy() {
	defer close(s.drained)
	for ev := range s.occupancy {
		s.events.publish(context.Background(), queue.QueueTableOccupancy, ev)
	}
}

// Reset forgets the snapshot and messages. It runs when the session is
// cleared; the next snapshot is treated as the first one.
func (s *TableService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidateLocked()
	s.tables = nil
	s.lastUpdated = time.Time{}
	s.hasSnapshot = false
}

// Close stops applying snapshots. Events already queued are still published.
func (s *TableService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.occupancy)
}

func diffOccupancy(prev, next []domain.Table, at time.Time) []domain.TableOccupancyEvent {
	before := make(map[int]domain.Table, len(prev))
	for _, t := range prev {
		before[t.Number] = t
	}

	var events []domain.TableOccupancyEvent
	for _, t := range next {
		old := before[t.Number]
		delete(before, t.Number)

		if old.Username == t.Username {
			continue
		}
		ev := domain.TableOccupancyEvent{
			EventType:   domain.EventTableOccupied,
			TableID:     t.ID,
			TableNumber: t.Number,
			OldUsername: old.Username,
			NewUsername: t.Username,
			Timestamp:   at,
		}
		if t.Username == "" {
			ev.EventType = domain.EventTableReleased
		}
		events = append(events, ev)
	}

	// tables removed while occupied count as released
	for _, t := range prev {
		if _, gone := before[t.Number]; !gone || !t.Occupied() {
			continue
		}
		events = append(events, domain.TableOccupancyEvent{
			EventType:   domain.EventTableReleased,
			TableID:     t.ID,
			TableNumber: t.Number,
			OldUsername: t.Username,
			Timestamp:   at,
		})
	}

	return events
}

func (s *TableService) Tables() []domain.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Table(nil), s.tables...)
}

func (s *TableService) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdated
}

// MyTable is the first table assigned to the session's user, derived from
// the current snapshot on every call.
func (s *TableService) MyTable() (domain.Table, bool) {
	username := s.session.Username()

	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.FindByUsername(s.tables, username)
}

// FetchAll is the manual refresh, used when the stream is down.
func (s *TableService) FetchAll(ctx context.Context) error {
	gen, err := s.begin(opFetchTables)
	if err != nil {
		return err
	}
	defer s.end(opFetchTables, gen)

	tables, err := s.repo.List(ctx)
	if err != nil {
		return s.fail(gen, fmt.Errorf("failed to fetch tables: %w", err))
	}
	if err := domain.ValidateTables(tables); err != nil {
		return s.fail(gen, fmt.Errorf("failed to fetch tables: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.currentLocked(gen); err != nil {
		return err
	}
	s.errMsg = ""
	s.applyLocked(domain.Snapshot{Tables: tables, ReceivedAt: s.now()})
	return nil
}

func (s *TableService) JoinTable(ctx context.Context, number int) error {
	if number <= 0 {
		return s.reject(domain.ErrInvalidTable)
	}
	username := s.session.Username()
	if username == "" {
		return s.reject(domain.ErrNotAuthenticated)
	}

	return s.run(opJoin, func() error {
		if err := s.repo.Assign(ctx, number, username); err != nil {
			return fmt.Errorf("failed to join table %d: %w", number, err)
		}
		s.logger.Infow("joined table", "table_number", number, "username", username)
		return nil
	}, fmt.Sprintf("Joined table %d", number))
}

func (s *TableService) LeaveTable(ctx context.Context, number int, c Confirmer) error {
	if number <= 0 {
		return s.reject(domain.ErrInvalidTable)
	}
	if !confirmed(ctx, c, promptLeaveTable) {
		return s.reject(domain.ErrNotConfirmed)
	}

	return s.run(opLeave, func() error {
		if err := s.repo.CompleteOrder(ctx, number); err != nil {
			return fmt.Errorf("failed to leave table %d: %w", number, err)
		}
		s.logger.Infow("left table", "table_number", number)
		return nil
	}, fmt.Sprintf("Left table %d", number))
}

func (s *TableService) CreateTable(ctx context.Context, number int) error {
	if number <= 0 {
		return s.reject(domain.ErrInvalidTable)
	}

	return s.run(opCreateTable, func() error {
		if err := s.repo.Create(ctx, number); err != nil {
			return fmt.Errorf("failed to create table %d: %w", number, err)
		}
		return nil
	}, fmt.Sprintf("Table %d created", number))
}

func (s *TableService) UpdateTable(ctx context.Context, number, newNumber int) error {
	if number <= 0 || newNumber <= 0 {
		return s.reject(domain.ErrInvalidTable)
	}

	return s.run(opUpdateTable, func() error {
		if err := s.repo.Update(ctx, number, newNumber); err != nil {
			return fmt.Errorf("failed to update table %d: %w", number, err)
		}
		return nil
	}, fmt.Sprintf("Table %d renumbered to %d", number, newNumber))
}

// DeleteTable removes an unoccupied table after confirmation.
func (s *TableService) DeleteTable(ctx context.Context, number int, c Confirmer) error {
	if number <= 0 {
		return s.reject(domain.ErrInvalidTable)
	}

	s.mu.Lock()
	t, found := domain.FindByNumber(s.tables, number)
	s.mu.Unlock()
	if found && t.Occupied() {
		return s.reject(domain.ErrTableOccupied)
	}

	if !confirmed(ctx, c, promptDeleteTable) {
		return s.reject(domain.ErrNotConfirmed)
	}

	return s.run(opDeleteTable, func() error {
		if err := s.repo.Delete(ctx, number); err != nil {
			return fmt.Errorf("failed to delete table %d: %w", number, err)
		}
		return nil
	}, fmt.Sprintf("Table %d deleted", number))
}

func (s *TableService) run(op string, call func() error, success string) error {
	gen, err := s.begin(op)
	if err != nil {
		return err
	}
	defer s.end(op, gen)

	if err := call(); err != nil {
		return s.fail(gen, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.currentLocked(gen); err != nil {
		return err
	}
	s.errMsg = ""
	s.success = success
	return nil
}

type TableView struct {
	Tables      []domain.Table `json:"tables"`
	LastUpdated *time.Time     `json:"lastUpdated,omitempty"`
	MyTable     *domain.Table  `json:"myTable,omitempty"`
	Loading     bool           `json:"loading"`
	Error       string         `json:"error,omitempty"`
	Success     string         `json:"success,omitempty"`
}

func (s *TableService) View() TableView {
	username := s.session.Username()

	s.mu.Lock()
	defer s.mu.Unlock()

	view := TableView{
		Tables:  append(make([]domain.Table, 0, len(s.tables)), s.tables...),
		Loading: s.loadingLocked(),
		Error:   s.errMsg,
		Success: s.success,
	}
	if !s.lastUpdated.IsZero() {
		at := s.lastUpdated
		view.LastUpdated = &at
	}
	if t, ok := domain.FindByUsername(s.tables, username); ok {
		view.MyTable = &t
	}
	return view
}
