package main

import (
	"errors"
	"net/http"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/gateway"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusBadRequest, err.Error())
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("conflict", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusConflict, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusNotFound, "not found")
}

func (app *application) unavailableResponse(w http.ResponseWriter, r *http.Request, feature string) {
	app.logger.Warnw("feature unavailable", "method", r.Method, "path", r.URL.Path, "feature", feature)

	writeJsonError(w, http.StatusServiceUnavailable, feature+" is not configured")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)

	writeJsonError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// serviceError maps workflow errors onto statuses. Remote request errors keep
// the backend's status and message.
func (app *application) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		reqErr *gateway.RequestError
		netErr *gateway.NetworkError
	)

	switch {
	case errors.Is(err, domain.ErrNotConfirmed):
		app.logger.Infow("action not confirmed", "method", r.Method, "path", r.URL.Path)
		writeJsonError(w, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, domain.ErrBusy),
		errors.Is(err, domain.ErrStale),
		errors.Is(err, domain.ErrCheckoutSubmitted),
		errors.Is(err, domain.ErrTableOccupied):
		app.conflictResponse(w, r, err)
	case errors.Is(err, domain.ErrCartEmpty),
		errors.Is(err, domain.ErrNoCheckout),
		errors.Is(err, domain.ErrZeroDelta),
		errors.Is(err, domain.ErrInvalidTable):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrNotAuthenticated):
		writeJsonError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrClosed):
		writeJsonError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &reqErr):
		app.logger.Warnw("remote request failed", "method", r.Method, "path", r.URL.Path, "status", reqErr.Status, "error", reqErr.Message)
		writeJsonError(w, reqErr.Status, reqErr.Message)
	case errors.As(err, &netErr):
		app.logger.Errorw("remote unreachable", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeJsonError(w, http.StatusBadGateway, "restaurant backend unreachable")
	default:
		app.internalServerError(w, r, err)
	}
}
