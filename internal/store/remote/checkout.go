// Package remote implements the repositories over the restaurant backend's
// REST API.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/gateway"
)

type CheckoutRepository struct {
	gw *gateway.Client
}

func NewCheckoutRepository(gw *gateway.Client) *CheckoutRepository {
	return &CheckoutRepository{gw: gw}
}

func (r *CheckoutRepository) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := r.gw.Do(ctx, http.MethodGet, "/api/auth/me", nil, true, &user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("current user response has no id")
	}
	return &user, nil
}

func (r *CheckoutRepository) CartItems(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	var items []domain.CartItem
	path := fmt.Sprintf("/api/cart/%d/items", userID)
	if err := r.gw.Do(ctx, http.MethodGet, path, nil, true, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByUser returns the user's checkout. A null body means the user has
// none and yields nil without an error, the same as a 404 does upstream.
func (r *CheckoutRepository) FindByUser(ctx context.Context, userID int64) (*domain.Checkout, error) {
	var checkout *domain.Checkout
	path := "/api/checkouts?userId=" + strconv.FormatInt(userID, 10)
	if err := r.gw.Do(ctx, http.MethodGet, path, nil, true, &checkout); err != nil {
		return nil, err
	}
	if checkout == nil {
		return nil, nil
	}
	if checkout.ID.IsZero() {
		return nil, fmt.Errorf("checkout response has no id")
	}
	return checkout, nil
}

func (r *CheckoutRepository) Create(ctx context.Context, cartID domain.ID) (*domain.Checkout, error) {
	body := map[string]string{"cartId": cartID.String()}

	var checkout domain.Checkout
	if err := r.gw.Do(ctx, http.MethodPost, "/api/checkouts", body, true, &checkout); err != nil {
		return nil, err
	}
	if checkout.ID.IsZero() {
		return nil, fmt.Errorf("created checkout has no id")
	}
	return &checkout, nil
}

func (r *CheckoutRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Checkout, error) {
	var checkout domain.Checkout
	if err := r.gw.Do(ctx, http.MethodGet, "/api/checkouts/"+url.PathEscape(id.String()), nil, true, &checkout); err != nil {
		return nil, err
	}
	return &checkout, nil
}

func (r *CheckoutRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID domain.ID, delta int) error {
	path := fmt.Sprintf("/api/checkouts/%s/items/%s?deltaQuantity=%d",
		url.PathEscape(cartID.String()), url.PathEscape(itemID.String()), delta)
	_, err := r.gw.DoText(ctx, http.MethodPut, path, nil, true)
	return err
}

func (r *CheckoutRepository) Submit(ctx context.Context, id domain.ID) error {
	return r.gw.Do(ctx, http.MethodPut, "/api/checkouts/"+url.PathEscape(id.String())+"/submit", nil, true, nil)
}

func (r *CheckoutRepository) Cancel(ctx context.Context, id domain.ID) error {
	_, err := r.gw.DoText(ctx, http.MethodDelete, "/api/checkouts/"+url.PathEscape(id.String()), nil, true)
	return err
}

func (r *CheckoutRepository) ListSubmitted(ctx context.Context) ([]domain.Checkout, error) {
	var checkouts []domain.Checkout
	if err := r.gw.Do(ctx, http.MethodGet, "/api/checkouts/submitted", nil, true, &checkouts); err != nil {
		return nil, err
	}
	if checkouts == nil {
		return nil, fmt.Errorf("submitted checkouts response is not an array")
	}
	return checkouts, nil
}

func (r *CheckoutRepository) Process(ctx context.Context, id domain.ID) error {
	_, err := r.gw.DoText(ctx, http.MethodDelete, "/api/checkouts/"+url.PathEscape(id.String())+"/processed", nil, true)
	return err
}
