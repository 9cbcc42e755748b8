package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/go-chi/chi"
)

type UpdateItemRequest struct {
	Delta int `json:"delta" validate:"required,min=-100,max=100"`
}

func (app *application) writeCheckout(w http.ResponseWriter, r *http.Request, status int) {
	if err := app.jsonResponse(w, status, app.checkout.View()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCheckoutHandler godoc
//
//	@Summary		Checkout
//	@Description	Current checkout view. The first call initializes the checkout from the cart.
//	@Tags			checkout
//	@Produce		json
//	@Success		200	{object}	service.CheckoutView
//	@Router			/checkout [get]
func (app *application) getCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	// the outcome, including "cart empty", is part of the view
	if err := app.checkout.AutoInitialize(context.WithoutCancel(r.Context())); err != nil {
		app.logger.Debugw("checkout auto initialization did not complete", "error", err)
	}

	app.writeCheckout(w, r, http.StatusOK)
}

// initCheckoutHandler godoc
//
//	@Summary		Initialize checkout
//	@Description	Finds the user's checkout or creates one from the first cart item
//	@Tags			checkout
//	@Produce		json
//	@Success		200	{object}	service.CheckoutView
//	@Failure		400	{object}	map[string]string
//	@Failure		409	{object}	map[string]string
//	@Router			/checkout/init [post]
func (app *application) initCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.checkout.Initialize(r.Context()); err != nil {
		app.serviceError(w, r, err)
		return
	}

	app.writeCheckout(w, r, http.StatusOK)
}

// refreshCheckoutHandler godoc
//
//	@Summary		Refresh checkout
//	@Description	Refetches items and details of the current checkout
//	@Tags			checkout
//	@Produce		json
//	@Success		200	{object}	service.CheckoutView
//	@Failure		400	{object}	map[string]string
//	@Router			/checkout/refresh [post]
func (app *application) refreshCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.checkout.Refresh(r.Context()); err != nil {
		app.serviceError(w, r, err)
		return
	}

	app.writeCheckout(w, r, http.StatusOK)
}

// updateCheckoutItemHandler godoc
//
//	@Summary		Update item quantity
//	@Description	Applies a quantity delta to a cart item of a draft checkout
//	@Tags			checkout
//	@Accept			json
//	@Produce		json
//	@Param			item_id	path		string				true	"Cart item ID"
//	@Param			request	body		UpdateItemRequest	true	"Quantity delta"
//	@Success		200		{object}	service.CheckoutView
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/checkout/items/{item_id} [patch]
func (app *application) updateCheckoutItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		app.badRequestResponse(w, r, errors.New("item_id is required"))
		return
	}

	var req UpdateItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.checkout.UpdateItemQuantity(r.Context(), domain.ID(itemID), req.Delta); err != nil {
		app.serviceError(w, r, err)
		return
	}

	app.writeCheckout(w, r, http.StatusOK)
}

// submitCheckoutHandler godoc
//
//	@Summary		Submit checkout
//	@Description	Submits the draft checkout for admin processing
//	@Tags			checkout
//	@Produce		json
//	@Success		200	{object}	service.CheckoutView
//	@Failure		400	{object}	map[string]string
//	@Failure		409	{object}	map[string]string
//	@Router			/checkout/submit [post]
func (app *application) submitCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.checkout.SubmitCheckout(r.Context()); err != nil {
		app.serviceError(w, r, err)
		return
	}

	app.writeCheckout(w, r, http.StatusOK)
}

// cancelCheckoutHandler godoc
//
//	@Summary		Cancel checkout
//	@Description	Deletes the checkout. Requires confirm=true.
//	@Tags			checkout
//	@Produce		json
//	@Param			confirm	query		bool	true	"Confirmation"
//	@Success		200		{object}	service.CheckoutView
//	@Failure		400		{object}	map[string]string
//	@Failure		412		{object}	map[string]string
//	@Router			/checkout [delete]
func (app *application) cancelCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.checkout.CancelCheckout(r.Context(), confirmParam(r)); err != nil {
		app.serviceError(w, r, err)
		return
	}

	app.writeCheckout(w, r, http.StatusOK)
}
