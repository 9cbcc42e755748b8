package repo

import (
	"context"

	"github.com/Beka01247/restaurant-client/internal/domain"
)

// CheckoutRepository is the remote cart/checkout API.
type CheckoutRepository interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
	CartItems(ctx context.Context, userID int64) ([]domain.CartItem, error)
	FindByUser(ctx context.Context, userID int64) (*domain.Checkout, error)
	Create(ctx context.Context, cartID domain.ID) (*domain.Checkout, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Checkout, error)
	UpdateItemQuantity(ctx context.Context, cartID, itemID domain.ID, delta int) error
	Submit(ctx context.Context, id domain.ID) error
	Cancel(ctx context.Context, id domain.ID) error
	ListSubmitted(ctx context.Context) ([]domain.Checkout, error)
	Process(ctx context.Context, id domain.ID) error
}
