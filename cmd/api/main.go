// Package main is the entry point for the trip preparation API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"

	"github.com/mviana/trip-prep/backend/internal/analysis"
	"github.com/mviana/trip-prep/backend/internal/config"
	"github.com/mviana/trip-prep/backend/internal/handler"
	"github.com/mviana/trip-prep/backend/internal/middleware"
	"github.com/mviana/trip-prep/backend/internal/repo"
	"github.com/mviana/trip-prep/backend/internal/service"
	"github.com/mviana/trip-prep/backend/internal/verify"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog JSON handler writes machine-readable output suitable for log
	// aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic. The database
	// often comes up moments after the app under docker-compose, so ping
	// with backoff instead of failing on the first refused connection.
	pingBackoff := retry.WithMaxDuration(30*time.Second, retry.NewExponential(time.Second))
	err = retry.Do(context.Background(), pingBackoff, func(ctx context.Context) error {
		return retry.RetryableError(pool.Ping(ctx))
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Repositories -----------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	insuranceRepo := repo.NewInsuranceRepo(pool)
	transportRepo := repo.NewTransportRepo(pool)
	taskRepo := repo.NewTaskRepo(pool)

	// --- Verification core ------------------------------------------------
	engine := verify.NewEngine(verify.DefaultRegistry())
	verification := service.NewVerificationService(
		tripRepo, insuranceRepo, transportRepo, taskRepo,
		engine, nil, logger, service.Options{},
	)
	trips := service.NewTripService(tripRepo, insuranceRepo)
	exports := service.NewExportService(tripRepo, taskRepo)

	// --- AI analysis layer (optional) -------------------------------------
	var analyzer service.TripAnalyzer
	if cfg.GeminiAPIKey != "" {
		provider, err := analysis.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("failed to create analysis provider", "error", err)
			os.Exit(1)
		}
		defer provider.Close()

		cache := analysis.NewCache(cfg.AnalysisCacheTTL, analysis.SystemClock{})
		analyzer = analysis.NewAnalyzer(provider, cache, analysis.SystemClock{}, logger, cfg.AnalysisTimeout)
		slog.Info("AI analysis enabled", "model", cfg.GeminiModel)
	} else {
		slog.Info("AI analysis disabled: GEMINI_API_KEY not set")
	}
	analyses := service.NewAnalysisService(tripRepo, insuranceRepo, transportRepo, analyzer)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(1 << 20)) // 1 MiB

	server := handler.NewServer(trips, verification, analyses, exports)
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // analysis requests may wait on the provider
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
