package main

import (
	"fmt"
	"net"
	"net/http"
)

func (app *application) rateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if allow, retryAfter := app.rateLimiter.Allow(ip); !allow {
				app.rateLimitExceededResponse(w, r, fmt.Sprintf("%.0f", retryAfter.Seconds()))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
