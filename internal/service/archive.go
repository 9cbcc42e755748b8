package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/repo"
	"go.uber.org/zap"
)

// CheckoutExporter mirrors archived checkouts to an external ledger.
type CheckoutExporter interface {
	AppendCheckout(ctx context.Context, archive domain.CheckoutArchive) error
}

const defaultHistoryLimit = 50

// ArchiveService persists the events consumed from the broker: table
// occupancy changes and checkouts that left the pending queue.
type ArchiveService struct {
	auditRepo   repo.TableOccupancyAuditRepository
	archiveRepo repo.CheckoutArchiveRepository
	exporter    CheckoutExporter
	logger      *zap.SugaredLogger
	now         func() time.Time
}

// NewArchiveService accepts a nil exporter when no spreadsheet is configured.
func NewArchiveService(
	auditRepo repo.TableOccupancyAuditRepository,
	archiveRepo repo.CheckoutArchiveRepository,
	exporter CheckoutExporter,
	logger *zap.SugaredLogger,
) *ArchiveService {
	return &ArchiveService{
		auditRepo:   auditRepo,
		archiveRepo: archiveRepo,
		exporter:    exporter,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ArchiveService) RecordOccupancy(ctx context.Context, event domain.TableOccupancyEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}

	audit := &domain.TableOccupancyAudit{
		TableID:     event.TableID,
		TableNumber: event.TableNumber,
		EventType:   event.EventType,
		OldUsername: event.OldUsername,
		NewUsername: event.NewUsername,
		Timestamp:   event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		return fmt.Errorf("failed to create occupancy audit: %w", err)
	}

	s.logger.Infow("recorded table occupancy", "table_number", event.TableNumber, "event_type", event.EventType)
	return nil
}

// ArchiveCheckout stores checkouts that reached a terminal state. Other
// lifecycle events are acknowledged without a record.
func (s *ArchiveService) ArchiveCheckout(ctx context.Context, event domain.CheckoutEvent) (bool, error) {
	if event.EventType != domain.EventCheckoutProcessed && event.EventType != domain.EventCheckoutCancelled {
		return false, nil
	}
	if event.CheckoutID == "" {
		return false, fmt.Errorf("checkout event %s has no checkout id", event.EventType)
	}

	archivedAt := event.Timestamp
	if archivedAt.IsZero() {
		archivedAt = s.now()
	}

	archive := &domain.CheckoutArchive{
		CheckoutID: event.CheckoutID,
		CartID:     event.CartID,
		UserID:     event.UserID,
		Outcome:    event.EventType,
		TotalPrice: event.TotalPrice,
		ItemCount:  event.ItemCount,
		ArchivedAt: archivedAt,
	}

	if err := s.archiveRepo.Create(ctx, archive); err != nil {
		return false, fmt.Errorf("failed to archive checkout: %w", err)
	}

	if s.exporter != nil {
		if err := s.exporter.AppendCheckout(ctx, *archive); err != nil {
			return true, fmt.Errorf("failed to export checkout: %w", err)
		}
	}

	s.logger.Infow("archived checkout", "checkout_id", event.CheckoutID, "outcome", event.EventType)
	return true, nil
}

func (s *ArchiveService) TableHistory(ctx context.Context, number, limit int) ([]domain.TableOccupancyAudit, error) {
	if number <= 0 {
		return nil, domain.ErrInvalidTable
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	history, err := s.auditRepo.GetByTableNumber(ctx, number, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get table history: %w", err)
	}
	return history, nil
}

func (s *ArchiveService) ListArchive(ctx context.Context, limit int) ([]domain.CheckoutArchive, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	archives, err := s.archiveRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkout archive: %w", err)
	}
	return archives, nil
}
