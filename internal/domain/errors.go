package domain

import "errors"

// Validation conditions. These are client-side and never reach the network.
var (
	ErrCartEmpty         = errors.New("cart empty")
	ErrNotConfirmed      = errors.New("action not confirmed")
	ErrCheckoutSubmitted = errors.New("checkout already submitted")
	ErrNoCheckout        = errors.New("no active checkout")
	ErrZeroDelta         = errors.New("quantity delta must not be zero")
	ErrTableOccupied     = errors.New("cannot delete occupied table")
	ErrInvalidTable      = errors.New("table number must be positive")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrBusy              = errors.New("operation already in progress")
	ErrClosed            = errors.New("workflow closed")
	ErrStale             = errors.New("result discarded after session reset")
)
