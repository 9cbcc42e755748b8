package service

import "context"

// Confirmer gates destructive actions. Confirm must return true before the
// request is issued; a nil Confirmer never confirms.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Confirmation is a pre-answered Confirmer, used when the caller already asked
// (e.g. a ?confirm=true query parameter).
type Confirmation bool

func (c Confirmation) Confirm(context.Context, string) bool { return bool(c) }

func confirmed(ctx context.Context, c Confirmer, prompt string) bool {
	return c != nil && c.Confirm(ctx, prompt)
}

const (
	promptCancelCheckout  = "Are you sure you want to cancel this checkout?"
	promptProcessCheckout = "Mark this checkout as processed?"
	promptLeaveTable      = "Are you sure you want to leave this table?"
	promptDeleteTable     = "Are you sure you want to delete this table?"
)
