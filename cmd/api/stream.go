package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Beka01247/restaurant-client/internal/stream"
)

type StreamStatusResponse struct {
	Status         stream.Status `json:"status"`
	Attempt        int           `json:"attempt"`
	MaxAttempts    int           `json:"maxAttempts"`
	LastSnapshotAt *time.Time    `json:"lastSnapshotAt,omitempty"`
	Error          string        `json:"error,omitempty"`
	Fatal          bool          `json:"fatal"`
}

func streamStatus(st stream.State) StreamStatusResponse {
	resp := StreamStatusResponse{
		Status:      st.Status,
		Attempt:     st.Attempt,
		MaxAttempts: st.MaxAttempts,
		Error:       st.LastError,
		Fatal:       st.Fatal,
	}
	if !st.LastSnapshotAt.IsZero() {
		at := st.LastSnapshotAt
		resp.LastSnapshotAt = &at
	}
	return resp
}

// streamStatusHandler godoc
//
//	@Summary		Table stream status
//	@Description	Connection state of the live table stream
//	@Tags			stream
//	@Produce		json
//	@Success		200	{object}	StreamStatusResponse
//	@Router			/stream [get]
func (app *application) streamStatusHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, streamStatus(app.stream.State())); err != nil {
		app.internalServerError(w, r, err)
	}
}

// restartStreamHandler godoc
//
//	@Summary		Restart table stream
//	@Description	Closes the current connection and reconnects with a fresh attempt budget
//	@Tags			stream
//	@Produce		json
//	@Success		202	{object}	StreamStatusResponse
//	@Failure		401	{object}	map[string]string
//	@Router			/stream/restart [post]
func (app *application) restartStreamHandler(w http.ResponseWriter, r *http.Request) {
	if !app.session.Authenticated() {
		writeJsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	app.stream.Start(context.Background())

	if err := app.jsonResponse(w, http.StatusAccepted, streamStatus(app.stream.State())); err != nil {
		app.internalServerError(w, r, err)
	}
}
