package domain

import "time"

// TableOccupancyEvent is emitted when a snapshot changes who sits at a table.
type TableOccupancyEvent struct {
	EventType   string    `json:"event_type"`
	TableID     int64     `json:"table_id"`
	TableNumber int       `json:"table_number"`
	OldUsername string    `json:"old_username"`
	NewUsername string    `json:"new_username"`
	Timestamp   time.Time `json:"timestamp"`
}

// CheckoutEvent records one lifecycle transition of a checkout.
type CheckoutEvent struct {
	EventType  string    `json:"event_type"`
	CheckoutID string    `json:"checkout_id"`
	CartID     string    `json:"cart_id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	TotalPrice string    `json:"total_price"`
	ItemCount  int       `json:"item_count"`
	Timestamp  time.Time `json:"timestamp"`
}

const (
	EventTableOccupied = "table.occupied"
	EventTableReleased = "table.released"

	EventCheckoutCreated   = "checkout.created"
	EventCheckoutSubmitted = "checkout.submitted"
	EventCheckoutCancelled = "checkout.cancelled"
	EventCheckoutProcessed = "checkout.processed"
)
