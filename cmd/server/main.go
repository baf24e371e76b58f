package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/feedsim/feedsim/internal/api"
	"github.com/feedsim/feedsim/internal/config"
	"github.com/feedsim/feedsim/internal/database"
	"github.com/feedsim/feedsim/internal/engine"
	"github.com/feedsim/feedsim/internal/logging"
	"github.com/feedsim/feedsim/internal/metrics"
	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/server"
	"github.com/feedsim/feedsim/internal/storage"
	"github.com/feedsim/feedsim/internal/ws"
	"github.com/joho/godotenv"
	"log/slog"
)

func main() {
	// Local development loads .env; in production the variables come from the
	// runtime environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting feedsim")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Select the persistence backend: Postgres when DATABASE_URL is set,
	// otherwise the in-memory store for a zero-dependency demo.
	var store storage.Store
	if cfg.Database.URL != "" {
		logger.Info("connecting to database")
		dbConfig := database.DefaultConfig()
		dbConfig.URL = cfg.Database.URL

		db, err := database.Connect(ctx, dbConfig)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.EnsureSchema(ctx, db, logger); err != nil {
			logger.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		store = database.NewPostgresStore(db)
		logger.Info("database connected")
	} else {
		logger.Info("no DATABASE_URL set, using in-memory store")
		store = storage.NewMemStore()
	}

	// Seed the bot population on first startup.
	seedCounts := engine.SeedCounts{
		models.PersonalityCasual:     cfg.Simulation.SeedCasual,
		models.PersonalityInfluencer: cfg.Simulation.SeedInfluencer,
		models.PersonalityPowerUser:  cfg.Simulation.SeedPowerUser,
		models.PersonalityLurker:     cfg.Simulation.SeedLurker,
	}
	seeder := engine.NewPopulationSeeder(store, newRNG(), logger, seedCounts)
	if _, err := seeder.Seed(ctx); err != nil {
		logger.Error("failed to seed bot population", "error", err)
		os.Exit(1)
	}

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	// Simulation engine. Both loops start paused; the control API starts them.
	posterRNG := newRNG()
	poster := engine.NewPostingScheduler(store, engine.NewContentGenerator(posterRNG), posterRNG, logger, collector, cfg.Simulation.InitialSpeed)
	scorer := engine.NewScorer(store, logger)
	algorithm := engine.NewAlgorithmEngine(
		engine.NewEngagementSimulator(store, newRNG(), logger, collector),
		scorer,
		engine.NewStatsAggregator(store, logger),
		logger,
		collector,
	)
	controller := engine.NewController(poster, algorithm, logger)

	// WebSocket push channel.
	hub := ws.NewHub(logger)
	go hub.Run(ctx)
	broadcaster := ws.NewBroadcaster(store, controller, hub, logger)
	go broadcaster.Run(ctx)

	// HTTP surface.
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/metrics", collector.Handler())
	mux.Handle("/ws", hub)

	logger.Info("setting up REST API")
	api.SetupRoutes(mux, store, scorer, controller, logger)

	handler := server.SPAMiddleware(collector.InstrumentHandler(mux), "./web/dist", "./web/dist/index.html")
	srv := server.New(cfg.Server, logger, handler)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("feedsim started", "port", cfg.Server.Port)

	waitForSignal(logger)

	logger.Info("shutting down")
	controller.Control(engine.ActionPause, nil)
	cancel()
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func waitForSignal(logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	logger.Info("received signal", "signal", sig.String())
	signal.Stop(c)
	close(c)
}
