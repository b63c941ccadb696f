package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"candidate-management-db/internal/config"
	"candidate-management-db/internal/logger"
	"candidate-management-db/internal/queue"
	"candidate-management-db/internal/storage"
	"candidate-management-db/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting cleanup worker")

	// Initialize Redis client
	redisClient, err := queue.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Initialize attachment storage
	store, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to storage")
	}

	// Create cleanup worker
	cleanupWorker := worker.NewCleanupWorker(cfg, store, redisClient)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start worker
	go func() {
		if err := cleanupWorker.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Cleanup worker failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down cleanup worker...")

	// Cancel context to stop worker
	cancel()
	cleanupWorker.Stop()

	log.Info().Msg("Cleanup worker exited")
}
