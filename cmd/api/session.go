package main

import (
	"net/http"
)

type LoginRequest struct {
	Token    string `json:"token" validate:"required"`
	Username string `json:"username" validate:"required,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type SessionResponse struct {
	Username      string `json:"username"`
	Role          string `json:"role,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

// loginHandler godoc
//
//	@Summary		Install session
//	@Description	Stores the token issued by the backend login and starts the table stream
//	@Tags			session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Session credentials"
//	@Success		201		{object}	SessionResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/session [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.session.Login(req.Token, req.Username, req.Role); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.checkout.Reset()
	app.startStream()

	app.logger.Infow("session installed", "username", req.Username, "role", req.Role)

	response := SessionResponse{
		Username:      app.session.Username(),
		Role:          app.session.Role(),
		Authenticated: true,
	}

	if err := app.jsonResponse(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// logoutHandler godoc
//
//	@Summary		Clear session
//	@Description	Drops every piece of session data and stops the table stream
//	@Tags			session
//	@Success		204
//	@Failure		500	{object}	map[string]string
//	@Router			/session [delete]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.session.Clear(); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
