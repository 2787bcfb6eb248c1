package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	natsadapter "github.com/strategickhaos/pipetrades/internal/adapters/nats"
	"github.com/strategickhaos/pipetrades/internal/adapters/postgres"
	"github.com/strategickhaos/pipetrades/internal/core/domain"
	"github.com/strategickhaos/pipetrades/internal/core/usecases"
	"github.com/strategickhaos/pipetrades/internal/pkg/config"
	"github.com/strategickhaos/pipetrades/internal/pkg/logging"
	"github.com/strategickhaos/pipetrades/internal/pkg/metrics"
)

// The relay is the durable consumer behind the crew channel: it archives
// every shared calculation into Postgres and rebroadcasts it on the plain
// subject that the API's WebSocket bridge fans out to browsers.
func main() {
	cfg, err := config.Load("pipetrades-relay")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("pipetrades-relay", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Publisher ensures the stream exists before the subscriber binds to it.
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats publisher: %v", err)
	}
	defer publisher.Close()

	subscriber, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats subscriber: %v", err)
	}
	defer subscriber.Close()

	jobRepo := postgres.NewJobRepo(db)
	crewSvc := usecases.NewCrewService(jobRepo, publisher)

	err = subscriber.SubscribeCrewUpdates(ctx, func(ctx context.Context, update *domain.CrewUpdate) error {
		if err := crewSvc.Archive(ctx, update); err != nil {
			slog.Error("archive crew update", "crew", update.CrewID, "kind", update.Kind, "error", err)
			return err
		}
		metrics.CrewUpdatesArchived.Inc()
		slog.Info("archived crew update", "crew", update.CrewID, "kind", update.Kind)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe crew updates: %v", err)
	}

	err = subscriber.SubscribePresence(ctx, func(ctx context.Context, presence *domain.Presence) error {
		slog.Info("crew presence", "crew", presence.CrewID, "status", presence.Status,
			"capabilities", presence.Capabilities)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe presence: %v", err)
	}

	slog.Info("relay started", "stream", "CREW_JOBS", "durable", "crew-archiver")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received", "signal", sig.String())
}
