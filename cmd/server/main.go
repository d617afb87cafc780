package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/tcfprep/backend/internal/config"
	"github.com/tcfprep/backend/internal/database"
	"github.com/tcfprep/backend/internal/engine"
	"github.com/tcfprep/backend/internal/handler"
	"github.com/tcfprep/backend/internal/logger"
	"github.com/tcfprep/backend/internal/model"
	"github.com/tcfprep/backend/internal/repository"
	"github.com/tcfprep/backend/internal/router"
	"github.com/tcfprep/backend/internal/service"
	"github.com/tcfprep/backend/internal/validator"
	"github.com/tcfprep/backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting TCF Prep Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	catalogRepo := repository.NewCatalogRepository(pool)
	trackingRepo := repository.NewTrackingRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)

	// ─── Load Catalogs and Build Engines ──────────────────────────────
	// Catalogs are loaded once at boot. A skill whose catalog is empty
	// still gets an engine; its start/filter operations fail cleanly
	// until the catalog is seeded and the server restarts.
	catalogService := service.NewCatalogService(catalogRepo, rdb, log)

	adapters := map[model.Skill]engine.SubjectAdapter{
		model.SkillListening: service.ListeningAdapter{MediaBaseURL: cfg.MediaBaseURL},
		model.SkillReading:   service.ReadingAdapter{MediaBaseURL: cfg.MediaBaseURL},
	}

	engines := make(map[model.Skill]*engine.Engine, len(adapters))
	catalogs := make(map[model.Skill]*engine.Catalog, len(adapters))
	for skill, adapter := range adapters {
		catalog := catalogService.LoadCatalog(ctx, skill)
		eng, err := engine.New(adapter, catalog, engine.Options{
			Composition:  cfg.Composition,
			TestLength:   cfg.TestLength,
			PrepareDelay: cfg.PrepareDelay,
		})
		if err != nil {
			log.Fatal().Err(err).Str("skill", string(skill)).Msg("Engine construction failed")
		}
		engines[skill] = eng
		catalogs[skill] = catalog

		if err := catalogService.WarmCatalogCache(ctx, catalog, skill); err != nil {
			log.Warn().Err(err).Str("skill", string(skill)).Msg("Catalog cache warm failed")
		}
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	trackingQueue := service.NewTrackingQueue(rdb, log)
	ledger := engine.NewLedger(historyRepo)
	practiceService := service.NewPracticeService(engines, trackingRepo, trackingQueue, log)
	testService := service.NewTestService(engines, ledger, trackingQueue, rdb, log)
	historyService := service.NewHistoryService(ledger, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogService, catalogs),
		Practice: handler.NewPracticeHandler(practiceService),
		Test:     handler.NewTestHandler(testService),
		History:  handler.NewHistoryHandler(historyService),
		WS:       handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	trackingWorker := worker.NewTrackingWorker(trackingRepo, rdb, log)
	go trackingWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the tracking worker and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow the worker to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
