package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"taximeter/internal/app"
	"taximeter/internal/config"
	"taximeter/internal/domain"
	"taximeter/internal/handler"
	"taximeter/internal/meter"
	internalRedis "taximeter/internal/redis"
	"taximeter/internal/repository/postgres"
	"taximeter/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server, meterService, err := wireServer(ctx, db, redisClient, nrApp, cfg)
	if err != nil {
		log.Fatalf("failed to wire service: %v", err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)

	// HTTP server.
	g.Go(func() error {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// Meter ticker: drives elapsed-time accumulation while a trip runs.
	g.Go(func() error {
		err := meterService.Run(gCtx, cfg.Meter.TickInterval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	// Graceful shutdown on signal.
	g.Go(func() error {
		<-gCtx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server and the
// meter service (so main can run its ticker loop).
func wireServer(ctx context.Context, db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, *service.MeterService, error) {
	// Initialize Redis stores.
	telemetryStore := internalRedis.NewTelemetryStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)

	// Initialize repositories.
	tariffRepo := postgres.NewTariffRepository(db)

	// Initialize services.
	notificationService := service.NewNotificationService()
	receiptService := service.NewReceiptService(notificationService)
	tariffService := service.NewTariffService(tariffRepo)

	fallback := domain.Tariff{
		BaseFare:     cfg.Meter.BaseFare,
		PerKilometer: cfg.Meter.PerKilometer,
		PerMinute:    cfg.Meter.PerMinute,
	}
	tariff, currency := tariffService.Resolve(ctx, cfg.Meter.TariffPlan, fallback, cfg.Meter.Currency)

	meterService, err := service.NewMeterService(
		cfg.Meter.VehicleID,
		currency,
		tariff,
		meter.SystemClock(),
		telemetryStore,
		lockStore,
		notificationService,
	)
	if err != nil {
		return nil, nil, err
	}

	// Initialize handlers.
	meterHandler := handler.NewMeterHandler(meterService, receiptService)
	tariffHandler := handler.NewTariffHandler(tariffService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		MeterHandler:  meterHandler,
		TariffHandler: tariffHandler,
		RedisClient:   redisClient,
		NewRelicApp:   nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, meterService, nil
}
