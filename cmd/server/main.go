package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/comment-moderation-api/internal/api"
	"github.com/comment-moderation-api/internal/config"
	"github.com/comment-moderation-api/internal/realtime"
	"github.com/comment-moderation-api/internal/service"
	"github.com/comment-moderation-api/internal/store"
	"github.com/comment-moderation-api/internal/webhook"
	"github.com/comment-moderation-api/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; environment variables win
	_ = godotenv.Load()

	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting comment moderation API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize comment store
	st, err := store.NewFileStore(&cfg.Store, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize comment store")
	}

	// Start realtime hub
	hubCtx, hubCancel := context.WithCancel(context.Background())
	hub := realtime.NewHub(log, cfg.CORS.AllowedOrigins)
	go hub.Run(hubCtx)

	// Start moderation webhook notifier
	notifier := webhook.NewNotifier(&cfg.Webhook, log)
	notifier.Start(context.Background())

	// Initialize service and router
	svc := service.New(st, hub, notifier, log)
	router := api.NewRouter(svc, hub, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop background components
	notifier.Stop()
	hubCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
