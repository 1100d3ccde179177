package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "readbooks-backend/internal/api/http"
	"readbooks-backend/internal/config"
	"readbooks-backend/internal/jobs"
	"readbooks-backend/internal/logger"
	"readbooks-backend/internal/repository/postgres"
	"readbooks-backend/internal/scheduler"
	"readbooks-backend/internal/security"
	"readbooks-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ReadBooks Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Auth configuration", "provider", cfg.Auth.Provider)
	logger.Info("Email configuration", "provider", cfg.Email.Provider)

	ctx := context.Background()

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)
	defer store.Close()

	if cfg.Database.EnsureSchema {
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Error("Failed to apply schema", "error", err)
			log.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("Database schema ensured")
	}

	// Initialize Security
	verifier, err := newIdentityVerifier(ctx, cfg.Auth)
	if err != nil {
		logger.Error("Failed to initialize identity verifier", "error", err)
		log.Fatalf("Failed to initialize identity verifier: %v", err)
	}

	// Initialize Services
	catalogSvc := service.NewCatalogService(store.BookRepository, store.CategoryRepository)
	lendingSvc := service.NewLendingService(store.BookRepository, store.BorrowRepository)

	// Initialize HTTP handlers
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Catalog:        httpapi.NewCatalogHandler(catalogSvc),
		Lending:        httpapi.NewLendingHandler(lendingSvc),
		Verifier:       verifier,
		Health:         store,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	// In-process reminder scheduler
	var cronScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobRunner := jobs.NewJobRunner(store.BorrowRepository, newEmailService(cfg.Email), cfg)
		cronScheduler, err = scheduler.NewScheduler(jobRunner)
		if err != nil {
			log.Fatalf("Failed to initialize scheduler: %v", err)
		}
		cronScheduler.Start()
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if cronScheduler != nil {
		cronScheduler.Stop()
	}
	logger.Info("Server stopped. Goodbye!")
}

func newIdentityVerifier(ctx context.Context, cfg config.AuthConfig) (security.IdentityVerifier, error) {
	switch cfg.Provider {
	case config.AuthProviderJWT:
		return security.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer), nil
	default:
		return security.NewFirebaseVerifier(ctx, security.FirebaseOptions{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsJSON: cfg.FirebaseCredentialsJSON,
			CredentialsFile: cfg.FirebaseCredentialsFile,
		})
	}
}

func newEmailService(cfg config.EmailConfig) service.EmailService {
	if cfg.Provider == config.EmailProviderSendGrid {
		return service.NewSendGridEmailService(cfg.SendGridAPIKey, cfg.FromEmail, cfg.FromName)
	}
	return service.NewLogEmailService()
}
