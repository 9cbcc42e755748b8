package queue

import (
	"context"
	"time"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Ping() error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueTableOccupancy    = "table-occupancy"
	QueueCheckoutEvents    = "checkout-events"
	QueueTableOccupancyDLQ = "table-occupancy-dlq"
	QueueCheckoutEventsDLQ = "checkout-events-dlq"
)

// Queues lists every queue the broker declares on connect.
var Queues = []string{
	QueueTableOccupancy,
	QueueCheckoutEvents,
	QueueTableOccupancyDLQ,
	QueueCheckoutEventsDLQ,
}

// RetryDelay is the wait before redelivery number retry+1: base * 2^retry.
func RetryDelay(base time.Duration, retry int) time.Duration {
	return base << retry
}
