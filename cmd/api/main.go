package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/strategickhaos/pipetrades/internal/adapters/http"
	natsadapter "github.com/strategickhaos/pipetrades/internal/adapters/nats"
	"github.com/strategickhaos/pipetrades/internal/adapters/postgres"
	"github.com/strategickhaos/pipetrades/internal/adapters/valkey"
	"github.com/strategickhaos/pipetrades/internal/core/ports"
	"github.com/strategickhaos/pipetrades/internal/core/usecases"
	"github.com/strategickhaos/pipetrades/internal/pkg/config"
	"github.com/strategickhaos/pipetrades/internal/pkg/logging"
	"github.com/strategickhaos/pipetrades/internal/pkg/metrics"
	"github.com/strategickhaos/pipetrades/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("pipetrades-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("pipetrades-api", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	// NATS crew channel
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Repos
	jobRepo := postgres.NewJobRepo(db)

	// Services nil-check their optional collaborators, so a missing cache or
	// broker must stay a nil interface, not a typed nil pointer.
	var cacheSvc ports.CacheService
	if cache != nil {
		cacheSvc = cache
	}
	var pub ports.EventPublisher
	if publisher != nil {
		pub = publisher
	}

	geoSvc := usecases.NewGeoService(cacheSvc)
	beamSvc := usecases.NewBeamService(jobRepo, pub)
	fittingSvc := usecases.NewFittingService()
	calibrationSvc := usecases.NewCalibrationService(jobRepo)
	jobSvc := usecases.NewJobService(jobRepo, cacheSvc)
	crewSvc := usecases.NewCrewService(jobRepo, pub)

	// Announce this installation on the crew channel
	if publisher != nil && cfg.Crew.ID != "" {
		if err := crewSvc.Announce(ctx, cfg.Crew.ID); err != nil {
			slog.Warn("crew announce failed", "error", err)
		}
	}

	deps := &http.Dependencies{
		Geo:         geoSvc,
		Beam:        beamSvc,
		Fitting:     fittingSvc,
		Calibration: calibrationSvc,
		Jobs:        jobSvc,
		Crew:        crewSvc,
		NATS:        natsConn,
		DB:          db,
		Cache:       cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "PipeTrades API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Periodic DB pool gauge refresh
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			case <-ctx.Done():
				return
			}
		}
	}()

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
