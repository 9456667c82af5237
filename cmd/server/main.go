package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/collegeconnect/suggester-backend/internal/config"
	"github.com/collegeconnect/suggester-backend/internal/database"
	"github.com/collegeconnect/suggester-backend/internal/handler"
	"github.com/collegeconnect/suggester-backend/internal/logger"
	"github.com/collegeconnect/suggester-backend/internal/repository"
	"github.com/collegeconnect/suggester-backend/internal/router"
	"github.com/collegeconnect/suggester-backend/internal/service"
	"github.com/collegeconnect/suggester-backend/internal/validator"
	"github.com/collegeconnect/suggester-backend/internal/worker"
	"github.com/rs/zerolog"
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
		Msg("Starting College Suggester Backend")

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
	regionRepo := repository.NewRegionRepository(pool)
	collegeRepo := repository.NewCollegeRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	cutoffRepo := repository.NewCutoffRepository(pool)
	ruleRepo := repository.NewCategoryRuleRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, userRepo)
	suggestionService := service.NewSuggestionService(cutoffRepo, collegeRepo, courseRepo, regionRepo, ruleRepo, rdb, cfg, log)
	importService := service.NewImportService(cutoffRepo, collegeRepo, courseRepo, suggestionService, rdb, log)
	catalogService := service.NewCatalogService(regionRepo, courseRepo, collegeRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Suggestion:   handler.NewSuggestionHandler(suggestionService),
		Catalog:      handler.NewCatalogHandler(catalogService),
		Import:       handler.NewImportHandler(importService, suggestionService),
		ImportStream: handler.NewImportStreamHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Build Initial Snapshot ───────────────────────────────────────
	// Load all cutoffs into memory BEFORE accepting traffic so the first
	// query never races an empty engine.
	if err := suggestionService.Rebuild(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial snapshot build failed; queries return DATA_UNAVAILABLE until refresh")
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	snapshotWorker := worker.NewSnapshotWorker(cutoffRepo, suggestionService, cfg.SnapshotRefreshInterval, log)
	go snapshotWorker.Start(workerCtx)

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

	// 2. Stop the background workers.
	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
