package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/go-chi/chi"
)

type CreateTableRequest struct {
	Number int `json:"nomor" validate:"required,min=1"`
}

type UpdateTableRequest struct {
	Number int `json:"nomor" validate:"required,min=1"`
}

// createTableHandler godoc
//
//	@Summary		Create table
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateTableRequest	true	"Table"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Router			/admin/tables [post]
func (app *application) createTableHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateTableRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.tables.CreateTable(r.Context(), req.Number); err != nil {
		app.serviceError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"nomor":   req.Number,
	}

	if err := app.jsonResponse(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateTableHandler godoc
//
//	@Summary		Renumber table
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			number	path		int					true	"Current table number"
//	@Param			request	body		UpdateTableRequest	true	"New number"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Router			/admin/tables/{number} [put]
func (app *application) updateTableHandler(w http.ResponseWriter, r *http.Request) {
	number, err := tableNumberParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateTableRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.tables.UpdateTable(r.Context(), number, req.Number); err != nil {
		app.serviceError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"nomor":   req.Number,
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteTableHandler godoc
//
//	@Summary		Delete table
//	@Description	Deletes an unoccupied table. Requires confirm=true.
//	@Tags			admin
//	@Param			number	path	int		true	"Table number"
//	@Param			confirm	query	bool	true	"Confirmation"
//	@Success		204
//	@Failure		409	{object}	map[string]string
//	@Failure		412	{object}	map[string]string
//	@Router			/admin/tables/{number} [delete]
func (app *application) deleteTableHandler(w http.ResponseWriter, r *http.Request) {
	number, err := tableNumberParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.tables.DeleteTable(r.Context(), number, confirmParam(r)); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// tableHistoryHandler godoc
//
//	@Summary		Table occupancy history
//	@Tags			admin
//	@Produce		json
//	@Param			number	path		int	true	"Table number"
//	@Param			limit	query		int	false	"Max entries"
//	@Success		200		{array}		domain.TableOccupancyAudit
//	@Failure		503		{object}	map[string]string
//	@Router			/admin/tables/{number}/history [get]
func (app *application) tableHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if app.archive == nil {
		app.unavailableResponse(w, r, "audit history")
		return
	}

	number, err := tableNumberParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	history, err := app.archive.TableHistory(r.Context(), number, limitParam(r))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, history); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listSubmittedCheckoutsHandler godoc
//
//	@Summary		Submitted checkouts
//	@Description	Checkouts awaiting processing
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	service.AdminCheckoutView
//	@Failure		500	{object}	map[string]string
//	@Router			/admin/checkouts [get]
func (app *application) listSubmittedCheckoutsHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.adminCheckouts.FetchSubmittedCheckouts(r.Context()); err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.adminCheckouts.View()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// processCheckoutHandler godoc
//
//	@Summary		Process checkout
//	@Description	Archives a submitted checkout server-side. Requires confirm=true.
//	@Tags			admin
//	@Produce		json
//	@Param			checkout_id	path		string	true	"Checkout ID"
//	@Param			confirm		query		bool	true	"Confirmation"
//	@Success		200			{object}	service.AdminCheckoutView
//	@Failure		412			{object}	map[string]string
//	@Router			/admin/checkouts/{checkout_id} [delete]
func (app *application) processCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	checkoutID := chi.URLParam(r, "checkout_id")
	if checkoutID == "" {
		app.badRequestResponse(w, r, errors.New("checkout_id is required"))
		return
	}

	if err := app.adminCheckouts.ProcessCheckout(r.Context(), domain.ID(checkoutID), confirmParam(r)); err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.adminCheckouts.View()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listArchiveHandler godoc
//
//	@Summary		Checkout archive
//	@Description	Checkouts that were processed or cancelled, newest first
//	@Tags			admin
//	@Produce		json
//	@Param			limit	query		int	false	"Max entries"
//	@Success		200		{array}		domain.CheckoutArchive
//	@Failure		503		{object}	map[string]string
//	@Router			/admin/archive [get]
func (app *application) listArchiveHandler(w http.ResponseWriter, r *http.Request) {
	if app.archive == nil {
		app.unavailableResponse(w, r, "checkout archive")
		return
	}

	archives, err := app.archive.ListArchive(r.Context(), limitParam(r))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, archives); err != nil {
		app.internalServerError(w, r, err)
	}
}

func limitParam(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
