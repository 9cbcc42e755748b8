package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/queue"
	"go.uber.org/zap"
)

type CheckoutArchiver interface {
	ArchiveCheckout(ctx context.Context, event domain.CheckoutEvent) (bool, error)
}

// CheckoutArchiveWorker archives checkouts that were processed or cancelled.
type CheckoutArchiveWorker struct {
	archiver CheckoutArchiver
	broker   queue.Broker
	logger   *zap.SugaredLogger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewCheckoutArchiveWorker(archiver CheckoutArchiver, broker queue.Broker, logger *zap.SugaredLogger) *CheckoutArchiveWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &CheckoutArchiveWorker{
		archiver: archiver,
		broker:   broker,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (w *CheckoutArchiveWorker) Start() error {
	w.logger.Info("starting checkout archive worker")

	return w.broker.Subscribe(w.ctx, queue.QueueCheckoutEvents, w.handleMessage)
}

func (w *CheckoutArchiveWorker) Stop() {
	w.logger.Info("stopping checkout archive worker")
	w.cancel()
}

func (w *CheckoutArchiveWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.CheckoutEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	archived, err := w.archiver.ArchiveCheckout(ctx, event)
	if err != nil {
		w.logger.Errorw("failed to archive checkout", "checkout_id", event.CheckoutID, "event_type", event.EventType, "error", err)
		return err
	}
	if !archived {
		w.logger.Debugw("checkout event not archived", "checkout_id", event.CheckoutID, "event_type", event.EventType)
	}

	return nil
}
