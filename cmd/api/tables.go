package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Beka01247/restaurant-client/internal/service"
	"github.com/go-chi/chi"
)

var ErrInvalidNumber = errors.New("invalid table number")

func tableNumberParam(r *http.Request) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || n <= 0 {
		return 0, ErrInvalidNumber
	}
	return n, nil
}

// confirmParam reads the ?confirm= answer for a destructive action.
func confirmParam(r *http.Request) service.Confirmer {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return service.Confirmation(ok)
}

// listTablesHandler godoc
//
//	@Summary		Table snapshot
//	@Description	Latest table states delivered by the live stream
//	@Tags			tables
//	@Produce		json
//	@Success		200	{object}	service.TableView
//	@Router			/tables [get]
func (app *application) listTablesHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, app.tables.View()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// refreshTablesHandler godoc
//
//	@Summary		Refresh tables
//	@Description	Fetches all tables from the backend, bypassing the stream
//	@Tags			tables
//	@Produce		json
//	@Success		200	{object}	service.TableView
//	@Failure		500	{object}	map[string]string
//	@Router			/tables/refresh [post]
func (app *application) refreshTablesHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.tables.FetchAll(r.Context()); err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.tables.View()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// myTableHandler godoc
//
//	@Summary		My table
//	@Description	The table currently assigned to the session user
//	@Tags			tables
//	@Produce		json
//	@Success		200	{object}	domain.Table
//	@Failure		404	{object}	map[string]string
//	@Router			/tables/mine [get]
func (app *application) myTableHandler(w http.ResponseWriter, r *http.Request) {
	table, ok := app.tables.MyTable()
	if !ok {
		app.notFoundResponse(w, r, errors.New("no table assigned"))
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, table); err != nil {
		app.internalServerError(w, r, err)
	}
}

// joinTableHandler godoc
//
//	@Summary		Join table
//	@Description	Assigns the session user to a table; occupancy appears with the next snapshot
//	@Tags			tables
//	@Produce		json
//	@Param			number	path		int	true	"Table number"
//	@Success		202		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/tables/{number}/join [post]
func (app *application) joinTableHandler(w http.ResponseWriter, r *http.Request) {
	number, err := tableNumberParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.tables.JoinTable(r.Context(), number); err != nil {
		app.serviceError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"message": app.tables.View().Success,
	}

	if err := app.jsonResponse(w, http.StatusAccepted, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// leaveTableHandler godoc
//
//	@Summary		Leave table
//	@Description	Completes the order at a table. Requires confirm=true.
//	@Tags			tables
//	@Produce		json
//	@Param			number	path		int		true	"Table number"
//	@Param			confirm	query		bool	true	"Confirmation"
//	@Success		202		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Failure		412		{object}	map[string]string
//	@Router			/tables/{number}/leave [post]
func (app *application) leaveTableHandler(w http.ResponseWriter, r *http.Request) {
	number, err := tableNumberParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.tables.LeaveTable(r.Context(), number, confirmParam(r)); err != nil {
		app.serviceError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"message": app.tables.View().Success,
	}

	if err := app.jsonResponse(w, http.StatusAccepted, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
