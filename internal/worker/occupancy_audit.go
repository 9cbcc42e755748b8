// Package worker consumes the lifecycle events published by the services and
// persists them off the request path.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/queue"
	"go.uber.org/zap"
)

type OccupancyRecorder interface {
	RecordOccupancy(ctx context.Context, event domain.TableOccupancyEvent) error
}

type OccupancyAuditWorker struct {
	recorder OccupancyRecorder
	broker   queue.Broker
	logger   *zap.SugaredLogger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewOccupancyAuditWorker(recorder OccupancyRecorder, broker queue.Broker, logger *zap.SugaredLogger) *OccupancyAuditWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &OccupancyAuditWorker{
		recorder: recorder,
		broker:   broker,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (w *OccupancyAuditWorker) Start() error {
	w.logger.Info("starting occupancy audit worker")

	return w.broker.Subscribe(w.ctx, queue.QueueTableOccupancy, w.handleMessage)
}

func (w *OccupancyAuditWorker) Stop() {
	w.logger.Info("stopping occupancy audit worker")
	w.cancel()
}

func (w *OccupancyAuditWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.TableOccupancyEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	w.logger.Debugw("processing occupancy event", "table_number", event.TableNumber, "event_type", event.EventType)

	if err := w.recorder.RecordOccupancy(ctx, event); err != nil {
		w.logger.Errorw("failed to record occupancy", "table_number", event.TableNumber, "error", err)
		return err
	}

	return nil
}
