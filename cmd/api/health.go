package main

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// healthcheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Healthcheck endpoint
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{}
	healthy := true

	check := func(name string, err error) {
		if err != nil {
			services[name] = "error"
			healthy = false
			return
		}
		services[name] = "ok"
	}

	if app.sessionStore != nil {
		check("session_store", app.sessionStore.Ping())
	}
	if app.storage != nil {
		check("database", app.storage.Ping(r.Context()))
	} else {
		services["database"] = "disabled"
	}
	if app.broker != nil {
		check("queue", app.broker.Ping())
	} else {
		services["queue"] = "disabled"
	}

	// a reconnecting stream is degraded, not down
	st := app.stream.State()
	services["stream"] = string(st.Status)
	if st.Fatal {
		services["stream"] = "failed"
		healthy = false
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  services,
	}

	if !healthy {
		response.Status = "unhealthy"
		if err := writeJson(w, http.StatusServiceUnavailable, response); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJson(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
