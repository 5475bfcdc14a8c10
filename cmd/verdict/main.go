package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/Verdict/internal/api"
	"github.com/MikeSquared-Agency/Verdict/internal/catalog"
	"github.com/MikeSquared-Agency/Verdict/internal/config"
	"github.com/MikeSquared-Agency/Verdict/internal/events"
	"github.com/MikeSquared-Agency/Verdict/internal/rooms"
	"github.com/MikeSquared-Agency/Verdict/internal/scoring"
	"github.com/MikeSquared-Agency/Verdict/internal/store"
	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
	"github.com/MikeSquared-Agency/Verdict/internal/verdict"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if err := store.RunMigrations(cfg.Database.URL); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to event bus, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to event bus")
		}
	}

	// Vehicle source: upstream catalog service, or the local store
	var source catalog.Client
	if cfg.Catalog.URL != "" {
		source = catalog.NewHTTPClient(cfg.Catalog.URL, cfg.Catalog.Token)
		logger.Info("using upstream catalog", "url", cfg.Catalog.URL)
	} else {
		source = catalog.NewStoreSource(db)
	}

	// Scoring
	weights := scoring.WeightSet{
		Mileage:        cfg.Scoring.Weights.Mileage,
		Performance:    cfg.Scoring.Weights.Performance,
		PriceAdvantage: cfg.Scoring.Weights.PriceAdvantage,
	}
	if err := weights.Validate(); err != nil {
		logger.Warn("invalid scoring weights, using defaults", "error", err)
		weights = scoring.DefaultWeights()
	}
	analyzer := scoring.NewAnalyzer(weights)

	// Verdict service
	var remote verdict.RemoteClient
	if cfg.Compare.RemoteURL != "" {
		remote = verdict.NewHTTPClient(cfg.Compare.RemoteURL)
	}
	verdicts := verdict.NewService(remote, analyzer, db, eventsClient, cfg.Compare.Owner, logger)
	defer verdicts.Close()

	// Room store
	roomState := rooms.NewFileState(cfg.Rooms.StatePath)
	roomStore := rooms.NewStore(cfg.Rooms.PoolSize, roomState, logger)
	roomStore.OnChange(func(room int, list []vehicle.Vehicle) {
		verdicts.RoomChanged(context.Background(), room, list)
	})
	// Restored rooms with enough vehicles get their verdicts computed up front
	for room, list := range roomStore.Snapshot() {
		verdicts.RoomChanged(context.Background(), room, list)
	}
	logger.Info("room store ready", "pool_size", cfg.Rooms.PoolSize, "state_path", cfg.Rooms.StatePath)

	// API server
	router := api.NewRouter(db, roomStore, verdicts, source, eventsClient, analyzer, cfg.Compare.HistoryLimit, cfg.Server.AdminToken, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsRouter := api.NewMetricsRouter()
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsRouter,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
