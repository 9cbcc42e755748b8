package service

import (
	"context"
	"testing"
	"time"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"go.uber.org/zap/zaptest"
)

type memoryAudit struct{ audits []domain.TableOccupancyAudit }

func (m *memoryAudit) Create(_ context.Context, a *domain.TableOccupancyAudit) error {
	m.audits = append(m.audits, *a)
	return nil
}

func (m *memoryAudit) GetByTableNumber(_ context.Context, number, limit int) ([]domain.TableOccupancyAudit, error) {
	var out []domain.TableOccupancyAudit
	for _, a := range m.audits {
		if a.TableNumber == number && len(out) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}

type memoryArchive struct{ archives []domain.CheckoutArchive }

func (m *memoryArchive) Create(_ context.Context, a *domain.CheckoutArchive) error {
	m.archives = append(m.archives, *a)
	return nil
}

func (m *memoryArchive) List(_ context.Context, limit int) ([]domain.CheckoutArchive, error) {
	if len(m.archives) > limit {
		return m.archives[:limit], nil
	}
	return m.archives, nil
}

type memoryExporter struct{ rows []domain.CheckoutArchive }

func (m *memoryExporter) AppendCheckout(_ context.Context, a domain.CheckoutArchive) error {
	m.rows = append(m.rows, a)
	return nil
}

func TestArchiveCheckoutKeepsTerminalOutcomes(t *testing.T) {
	archive := &memoryArchive{}
	exporter := &memoryExporter{}
	svc := NewArchiveService(&memoryAudit{}, archive, exporter, zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	for _, eventType := range []string{
		domain.EventCheckoutCreated,
		domain.EventCheckoutSubmitted,
		domain.EventCheckoutProcessed,
		domain.EventCheckoutCancelled,
	} {
		if _, err := svc.ArchiveCheckout(ctx, domain.CheckoutEvent{EventType: eventType, CheckoutID: "31", TotalPrice: "20000"}); err != nil {
			t.Fatalf("%s: %v", eventType, err)
		}
	}

	if len(archive.archives) != 2 || len(exporter.rows) != 2 {
		t.Fatalf("archived %d, exported %d; want 2 each", len(archive.archives), len(exporter.rows))
	}
	if archive.archives[0].Outcome != domain.EventCheckoutProcessed || archive.archives[0].ArchivedAt.IsZero() {
		t.Errorf("archive = %+v", archive.archives[0])
	}
}

func TestRecordOccupancyAndHistory(t *testing.T) {
	audit := &memoryAudit{}
	svc := NewArchiveService(audit, &memoryArchive{}, nil, zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.RecordOccupancy(ctx, domain.TableOccupancyEvent{EventType: domain.EventTableOccupied, TableNumber: 3, NewUsername: "budi", Timestamp: at})
	svc.RecordOccupancy(ctx, domain.TableOccupancyEvent{EventType: domain.EventTableOccupied, TableNumber: 4, NewUsername: "ani"})

	history, err := svc.TableHistory(ctx, 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].NewUsername != "budi" || !history[0].Timestamp.Equal(at) {
		t.Errorf("history = %+v", history)
	}
	if audit.audits[1].Timestamp.IsZero() {
		t.Error("missing timestamp not defaulted")
	}
}
