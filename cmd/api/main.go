package main

import (
	"context"
	"os"
	"time"

	"github.com/Beka01247/restaurant-client/internal/env"
	"github.com/Beka01247/restaurant-client/internal/gateway"
	"github.com/Beka01247/restaurant-client/internal/queue"
	"github.com/Beka01247/restaurant-client/internal/ratelimiter"
	"github.com/Beka01247/restaurant-client/internal/service"
	"github.com/Beka01247/restaurant-client/internal/session"
	"github.com/Beka01247/restaurant-client/internal/sheets"
	"github.com/Beka01247/restaurant-client/internal/store/mongo"
	"github.com/Beka01247/restaurant-client/internal/store/remote"
	"github.com/Beka01247/restaurant-client/internal/stream"
	"github.com/Beka01247/restaurant-client/internal/worker"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const version = "1.0.0"

//	@title			Restaurant Client
//	@description	Local API for the restaurant table and checkout client
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath	/api/v1
func main() {
	_ = godotenv.Load()

	cfg := config{
		addr:   env.GetString("ADDR", ":8080"),
		apiURL: env.GetString("EXTERNAL_URL", "localhost:8080"),
		env:    env.GetString("ENV", "development"),
		backend: backendConfig{
			BaseURL: env.GetString("API_BASE_URL", "http://localhost:8000"),
			Timeout: env.GetDuration("API_TIMEOUT", 10*time.Second),
		},
		stream: stream.Config{
			Path:        env.GetString("STREAM_PATH", stream.DefaultPath),
			Event:       env.GetString("STREAM_EVENT", stream.DefaultEvent),
			MaxAttempts: env.GetInt("STREAM_MAX_ATTEMPTS", stream.DefaultMaxAttempts),
			BackoffStep: env.GetDuration("STREAM_BACKOFF_STEP", stream.DefaultBackoffStep),
		},
		sessionDBPath: env.GetString("SESSION_DB_PATH", "session.db"),
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: env.GetInt("RATELIMITER_REQUESTS_COUNT", 20),
			TimeFrame:            time.Second * 5,
			Enabled:              env.GetBool("RATE_LIMITER_ENABLED", true),
		},
		mongo: mongoConfig{
			URI:      env.GetString("MONGO_URI", ""),
			Database: env.GetString("MONGO_DATABASE", "restaurant"),
			Timeout:  time.Second * 10,
		},
		rabbitMQ: rabbitMQConfig{
			URL:           env.GetString("RABBITMQ_URL", ""),
			MaxRetries:    env.GetInt("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay:    time.Second * 2,
			PrefetchCount: env.GetInt("RABBITMQ_PREFETCH_COUNT", 10),
		},
		googleCreds: env.GetString("GOOGLE_CREDENTIALS_PATH", ""),
		sheets: sheetsConfig{
			SpreadsheetID: env.GetString("ARCHIVE_SPREADSHEET_ID", ""),
			Range:         env.GetString("ARCHIVE_SPREADSHEET_RANGE", ""),
		},
	}

	// logger
	logger := zap.Must(zap.NewProduction()).Sugar()
	if cfg.env == "development" {
		logger = zap.Must(zap.NewDevelopment()).Sugar()
	}
	defer logger.Sync()

	// rate limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	// session
	sessionStore, err := session.OpenStormStore(cfg.sessionDBPath)
	if err != nil {
		logger.Fatalw("failed to open session store", "path", cfg.sessionDBPath, "error", err)
	}

	sess, err := session.Restore(sessionStore)
	if err != nil {
		logger.Fatalw("failed to restore session", "error", err)
	}
	if sess.Authenticated() {
		logger.Infow("restored session", "username", sess.Username())
	}

	// remote backend
	gw := gateway.New(gateway.Config{
		BaseURL: cfg.backend.BaseURL,
		Timeout: cfg.backend.Timeout,
	}, sess, logger)

	checkoutRepo := remote.NewCheckoutRepository(gw)
	tableRepo := remote.NewTableRepository(gw)

	// rabbitmq broker
	var broker queue.Broker
	if cfg.rabbitMQ.URL != "" {
		rabbit, err := queue.NewRabbitMQBroker(queue.Config{
			URL:           cfg.rabbitMQ.URL,
			MaxRetries:    cfg.rabbitMQ.MaxRetries,
			RetryDelay:    cfg.rabbitMQ.RetryDelay,
			PrefetchCount: cfg.rabbitMQ.PrefetchCount,
		}, logger)
		if err != nil {
			logger.Fatalw("failed to connect to RabbitMQ", "error", err)
		}
		broker = rabbit
		logger.Info("connected to RabbitMQ")
	} else {
		logger.Warn("RabbitMQ URL not provided, lifecycle events will not be published")
	}

	// storage
	var storage *mongo.Storage
	if cfg.mongo.URI != "" {
		storage, err = mongo.New(mongo.Config{
			URI:      cfg.mongo.URI,
			Database: cfg.mongo.Database,
			Timeout:  cfg.mongo.Timeout,
		})
		if err != nil {
			logger.Fatalw("failed to connect to MongoDB", "error", err)
		}

		logger.Info("connected to MongoDB")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := storage.CreateIndexes(ctx); err != nil {
			logger.Warnw("failed to create indexes", "error", err)
		} else {
			logger.Info("MongoDB indexes created successfully")
		}
		cancel()
	} else {
		logger.Warn("MongoDB URI not provided, audit history and archive are disabled")
	}

	// spreadsheet ledger
	var exporter service.CheckoutExporter
	if cfg.googleCreds != "" && cfg.sheets.SpreadsheetID != "" {
		credsJSON, err := os.ReadFile(cfg.googleCreds)
		if err != nil {
			logger.Fatalw("failed to read Google credentials", "error", err)
		}

		sheetsExporter, err := sheets.New(context.Background(), sheets.Config{
			CredentialsJSON: credsJSON,
			SpreadsheetID:   cfg.sheets.SpreadsheetID,
			Range:           cfg.sheets.Range,
		})
		if err != nil {
			logger.Fatalw("failed to create Google Sheets exporter", "error", err)
		}
		exporter = sheetsExporter
		logger.Info("Google Sheets exporter initialized")
	} else {
		logger.Warn("Google credentials or spreadsheet not provided, archive export disabled")
	}

	// services
	tableService := service.NewTableService(tableRepo, sess, broker, logger)
	checkoutService := service.NewCheckoutService(checkoutRepo, sess, broker, logger)
	adminCheckoutService := service.NewAdminCheckoutService(checkoutRepo, broker, logger)

	streamClient := stream.New(cfg.stream, gw, tableService.ApplySnapshot, logger)

	app := &application{
		config:         cfg,
		logger:         logger,
		rateLimiter:    rateLimiter,
		session:        sess,
		sessionStore:   sessionStore,
		storage:        storage,
		broker:         broker,
		stream:         streamClient,
		tables:         tableService,
		checkout:       checkoutService,
		adminCheckouts: adminCheckoutService,
	}

	if storage != nil {
		app.archive = service.NewArchiveService(
			mongo.NewTableOccupancyAuditRepository(storage.Database()),
			mongo.NewCheckoutArchiveRepository(storage.Database()),
			exporter,
			logger,
		)

		if broker != nil {
			app.occupancyWorker = worker.NewOccupancyAuditWorker(app.archive, broker, logger)
			app.archiveWorker = worker.NewCheckoutArchiveWorker(app.archive, broker, logger)
		}
	}

	// a cleared session (logout or a 401 from the backend or the stream) ends
	// the stream and forgets every workflow's state
	sess.OnClear(app.onSessionCleared)

	mux := app.mount()

	logger.Fatal(app.run(mux))
}

func (app *application) onSessionCleared() {
	app.logger.Info("session cleared")
	app.stream.Stop()
	app.checkout.Reset()
	app.adminCheckouts.Reset()
	app.tables.Reset()
}
