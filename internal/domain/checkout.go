package domain

import "github.com/shopspring/decimal"

type CheckoutState string

const (
	CheckoutNone      CheckoutState = "NONE"
	CheckoutDraft     CheckoutState = "DRAFT"
	CheckoutSubmitted CheckoutState = "SUBMITTED"
	CheckoutProcessed CheckoutState = "PROCESSED"
	CheckoutCancelled CheckoutState = "CANCELLED"
)

// Terminal reports whether no further transition out of s exists.
func (s CheckoutState) Terminal() bool {
	return s == CheckoutProcessed || s == CheckoutCancelled
}

type Checkout struct {
	ID          ID              `json:"id"`
	CartID      ID              `json:"cartId"`
	UserID      ID              `json:"userId"`
	Items       []CartItem      `json:"items"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	IsSubmitted bool            `json:"isSubmitted"`
	CreatedAt   Timestamp       `json:"createdAt"`
}

// State derives the lifecycle state of a checkout returned by the server.
func (c *Checkout) State() CheckoutState {
	switch {
	case c == nil:
		return CheckoutNone
	case c.IsSubmitted:
		return CheckoutSubmitted
	default:
		return CheckoutDraft
	}
}

// User is the authenticated account as returned by /auth/me.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}
