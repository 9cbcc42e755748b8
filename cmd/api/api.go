package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Beka01247/restaurant-client/docs"
	"github.com/Beka01247/restaurant-client/internal/queue"
	"github.com/Beka01247/restaurant-client/internal/ratelimiter"
	"github.com/Beka01247/restaurant-client/internal/service"
	"github.com/Beka01247/restaurant-client/internal/session"
	"github.com/Beka01247/restaurant-client/internal/store/mongo"
	"github.com/Beka01247/restaurant-client/internal/stream"
	"github.com/Beka01247/restaurant-client/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	rateLimiter ratelimiter.Limiter

	session      *session.Session
	sessionStore *session.StormStore
	storage      *mongo.Storage
	broker       queue.Broker
	stream       *stream.Client

	tables         *service.TableService
	checkout       *service.CheckoutService
	adminCheckouts *service.AdminCheckoutService
	archive        *service.ArchiveService

	occupancyWorker *worker.OccupancyAuditWorker
	archiveWorker   *worker.CheckoutArchiveWorker
}

type config struct {
	addr          string
	env           string
	apiURL        string
	backend       backendConfig
	stream        stream.Config
	sessionDBPath string
	rateLimiter   ratelimiter.Config
	mongo         mongoConfig
	rabbitMQ      rabbitMQConfig
	googleCreds   string
	sheets        sheetsConfig
}

type backendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type sheetsConfig struct {
	SpreadsheetID string
	Range         string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.rateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Post("/session", app.loginHandler)
		r.Delete("/session", app.logoutHandler)

		r.Get("/stream", app.streamStatusHandler)
		r.Post("/stream/restart", app.restartStreamHandler)

		r.Route("/tables", func(r chi.Router) {
			r.Get("/", app.listTablesHandler)
			r.Post("/refresh", app.refreshTablesHandler)
			r.Get("/mine", app.myTableHandler)
			r.Post("/{number}/join", app.joinTableHandler)
			r.Post("/{number}/leave", app.leaveTableHandler)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", app.getCheckoutHandler)
			r.Delete("/", app.cancelCheckoutHandler)
			r.Post("/init", app.initCheckoutHandler)
			r.Post("/refresh", app.refreshCheckoutHandler)
			r.Patch("/items/{item_id}", app.updateCheckoutItemHandler)
			r.Post("/submit", app.submitCheckoutHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/tables", app.createTableHandler)
			r.Put("/tables/{number}", app.updateTableHandler)
			r.Delete("/tables/{number}", app.deleteTableHandler)
			r.Get("/tables/{number}/history", app.tableHistoryHandler)

			r.Get("/checkouts", app.listSubmittedCheckoutsHandler)
			r.Delete("/checkouts/{checkout_id}", app.processCheckoutHandler)

			r.Get("/archive", app.listArchiveHandler)
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

// startStream opens the live table stream when a session exists. Without a
// token the backend would reject it anyway.
func (app *application) startStream() {
	if !app.session.Authenticated() {
		app.logger.Info("no session, table stream not started")
		return
	}
	app.stream.Start(context.Background())
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Restaurant Client"
	docs.SwaggerInfo.Description = "Local API for the restaurant table and checkout client"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.occupancyWorker != nil {
		if err := app.occupancyWorker.Start(); err != nil {
			return fmt.Errorf("failed to start occupancy worker: %w", err)
		}
	}
	if app.archiveWorker != nil {
		if err := app.archiveWorker.Start(); err != nil {
			return fmt.Errorf("failed to start archive worker: %w", err)
		}
	}

	app.startStream()

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		app.stream.Stop()
		app.tables.Close()
		app.checkout.Close()
		app.adminCheckouts.Close()

		if app.occupancyWorker != nil {
			app.occupancyWorker.Stop()
		}
		if app.archiveWorker != nil {
			app.archiveWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		if app.sessionStore != nil {
			if err := app.sessionStore.Close(); err != nil {
				app.logger.Errorw("error closing session store", "error", err)
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
