package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "bridgeseed-backend/internal/api/http"
	"bridgeseed-backend/internal/config"
	"bridgeseed-backend/internal/identity"
	"bridgeseed-backend/internal/jobs"
	"bridgeseed-backend/internal/logger"
	"bridgeseed-backend/internal/repository/postgres"
	"bridgeseed-backend/internal/scheduler"
	"bridgeseed-backend/internal/security"
	"bridgeseed-backend/internal/service"
	"bridgeseed-backend/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	withScheduler := flag.Bool("scheduler", false, "Run scheduled jobs inside the server process")
	flag.Parse()

	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting BridgeSeed backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry, cfg.Auth.RefreshTokenExpiry)

	// Initialize identity provider (firebase mode only)
	var verifier identity.Verifier
	if cfg.Auth.Mode == "firebase" {
		verifier, err = identity.NewFirebaseVerifier(context.Background(), cfg.Auth.FirebaseCredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize identity provider", "error", err)
			log.Fatalf("Failed to initialize identity provider: %v", err)
		}
		logger.Info("Firebase identity provider initialized")
	} else {
		logger.Info("Running in local auth mode")
	}

	// Initialize Storage Service
	var storageService storage.Interface
	var mockStorage *storage.MockStorageService
	switch cfg.Storage.Type {
	case "imgbb":
		logger.Info("Using ImgBB proof storage")
		storageService = storage.NewImgBBService(cfg.Storage.ImgBBAPIKey)
	default:
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err = storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageService = mockStorage
	}

	// Initialize Email Service
	var emailSvc service.EmailService
	if cfg.Email.SendGridAPIKey != "" {
		emailSvc = service.NewSendGridEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	} else {
		logger.Warn("No SendGrid API key configured, email notifications disabled")
		emailSvc = service.NewNoopEmailService()
	}

	// Initialize Services
	authSvc := service.NewAuthService(store, verifier, tokenManager, cfg.Auth.AllowedEmailDomains)
	txSvc := service.NewTransactionService(store, emailSvc)
	verificationSvc := service.NewVerificationService(store, emailSvc)
	badgeSvc := service.NewBadgeService(store, emailSvc)
	marketSvc := service.NewMarketplaceService(store)
	userSvc := service.NewUserService(store)
	contactSvc := service.NewContactService(store)

	// Initialize HTTP handlers and router
	handlers := httpapi.Handlers{
		Auth:        httpapi.NewAuthHandler(authSvc),
		Transaction: httpapi.NewTransactionHandler(txSvc),
		Admin:       httpapi.NewAdminHandler(verificationSvc, badgeSvc, contactSvc),
		Marketplace: httpapi.NewMarketplaceHandler(marketSvc, txSvc),
		User:        httpapi.NewUserHandler(userSvc),
		Contact:     httpapi.NewContactHandler(contactSvc),
		Proof:       httpapi.NewProofHandler(storageService, mockStorage),
	}
	router := httpapi.NewRouter(handlers, tokenManager)

	// Optionally run the cron scheduler in-process
	if *withScheduler {
		jobRunner := jobs.NewJobRunner(store, emailSvc, cfg)
		sched := scheduler.NewScheduler(jobRunner)
		sched.Start()
		defer sched.Stop()
	}

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
