package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/queuepulse/backend/internal/api"
	"github.com/queuepulse/backend/internal/config"
	"github.com/queuepulse/backend/internal/metrics"
	"github.com/queuepulse/backend/internal/notify"
	"github.com/queuepulse/backend/internal/report"
	"github.com/queuepulse/backend/internal/scheduler"
	"github.com/queuepulse/backend/internal/summary"
	"github.com/queuepulse/backend/internal/telemetry"
	"github.com/queuepulse/backend/pkg/middleware"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Str("region", cfg.AWSRegion).
		Bool("schedule_enabled", cfg.ScheduleEnabled).
		Str("log_level", cfg.LogLevel).
		Msg("starting QueuePulse backend server")

	// Create context for services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create Connect client
	connectClient, err := telemetry.NewConnectClient(ctx, cfg.AWSRegion, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Connect client")
	}

	// Create report pipeline
	collector := telemetry.NewCollector(connectClient, log.Logger)
	notifier := notify.NewNotifier(cfg.DisplayUTCOffsetHours, log.Logger)
	policy := summary.Policy{ZeroTrafficAnswerRate: cfg.ZeroTrafficAnswerRate}
	runner := report.NewRunner(collector, notifier, policy, cfg.ServiceLevelThreshold, log.Logger)

	// Start hourly schedule when a default event is configured
	if cfg.ScheduleEnabled {
		event := report.Event{
			ConnectARN: cfg.ConnectARN,
			Queues:     cfg.Queues,
			Webhook:    cfg.WebhookURL,
		}
		schedulerService := scheduler.New(runner, event, cfg.ReportTimeout, log.Logger)
		go schedulerService.Start(ctx)
	}

	// Create report handler
	reportHandler := api.NewHandler(runner, cfg.ReportTimeout, log.Logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Register public routes
	r.Get("/health", healthHandler)
	r.Get("/metrics", metrics.Get().Handler())

	// Internal routes (no auth - for internal schedulers and operators)
	r.Route("/internal", func(r chi.Router) {
		r.Post("/report", reportHandler.HandleReport)
		r.Get("/report/stats", reportHandler.GetStats)
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ReportTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Cancel scheduler context
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"queuepulse-backend"}`)
}
