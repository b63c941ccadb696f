package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"candidate-management-db/internal/api"
	"candidate-management-db/internal/auth"
	"candidate-management-db/internal/config"
	"candidate-management-db/internal/db"
	"candidate-management-db/internal/geo"
	"candidate-management-db/internal/logger"
	"candidate-management-db/internal/mail"
	"candidate-management-db/internal/queue"
	"candidate-management-db/internal/storage"
	"candidate-management-db/migrations"

	"github.com/gin-gonic/gin"
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

	log.Info().Str("version", cfg.App.Version).Msg("Starting API server")

	// Initialize database
	database, err := db.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	// Run migrations
	if err := migrations.InitSchema(database); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	if err := migrations.WidenLegacyRanges(database); err != nil {
		log.Fatal().Err(err).Msg("Failed to widen legacy ranges")
	}

	// Initialize repositories
	candidates := db.NewCandidateRepository(database)
	accounts := db.NewAccountRepository(database)
	reference := db.NewReferenceRepository(database)

	// Initialize Redis client
	redisClient, err := queue.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Initialize queue producer
	producer := queue.NewProducer(redisClient, cfg)

	// Initialize attachment storage
	store, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to storage")
	}

	// Load the state/city lookup
	lookup, err := geo.Load(cfg.Lookup.StatesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load states file")
	}

	// Seed the default admin accounts
	if err := auth.EnsureDefaultAccounts(context.Background(), accounts, cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap default accounts")
	}

	// Initialize API handler
	mailer := mail.NewSMTPMailer(cfg)
	handler := api.NewHandler(candidates, accounts, reference, store, producer, mailer, lookup, cfg)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(api.CORSMiddleware())
	router.Use(api.LoggingMiddleware())
	router.Use(api.RecoveryMiddleware())

	// Setup routes
	api.SetupRoutes(router, handler)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
