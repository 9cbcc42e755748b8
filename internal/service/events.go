package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/queue"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// publisher sends lifecycle events to the broker. Events are informational:
// a missing broker or a failed publish never fails the operation.
type publisher struct {
	broker queue.Broker
	logger *zap.SugaredLogger
	now    func() time.Time
}

func (p publisher) publish(ctx context.Context, queueName string, event any) {
	if p.broker == nil {
		return
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Errorw("failed to marshal event", "queue", queueName, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.broker.Publish(ctx, queueName, eventBytes); err != nil {
		p.logger.Errorw("failed to publish event", "queue", queueName, "error", err)
	}
}

func (p publisher) checkout(ctx context.Context, eventType string, c *domain.Checkout, username string) {
	if c == nil {
		return
	}

	p.publish(ctx, queue.QueueCheckoutEvents, domain.CheckoutEvent{
		EventType:  eventType,
		CheckoutID: c.ID.String(),
		CartID:     c.CartID.String(),
		UserID:     c.UserID.String(),
		Username:   username,
		TotalPrice: c.TotalPrice.String(),
		ItemCount:  domain.ItemCount(c.Items),
		Timestamp:  p.now(),
	})
}
