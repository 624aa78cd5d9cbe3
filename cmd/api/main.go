package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sunline-energie/offer-api/internal/auth"
	"github.com/sunline-energie/offer-api/internal/config"
	"github.com/sunline-energie/offer-api/internal/database"
	"github.com/sunline-energie/offer-api/internal/http/handler"
	"github.com/sunline-energie/offer-api/internal/http/middleware"
	"github.com/sunline-energie/offer-api/internal/http/router"
	"github.com/sunline-energie/offer-api/internal/jobs"
	"github.com/sunline-energie/offer-api/internal/logger"
	"github.com/sunline-energie/offer-api/internal/offer"
	"github.com/sunline-energie/offer-api/internal/repository"
	"github.com/sunline-energie/offer-api/internal/service"
	"github.com/sunline-energie/offer-api/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite deployments migrate in-process; Postgres uses cmd/migrate
	if cfg.Database.Driver == "sqlite" || cfg.Database.Driver == "" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Optional display-text overrides for the document engine
	texts, err := offer.LoadTexts(cfg.PDF.TextsPath)
	if err != nil {
		log.Warn("Failed to load PDF text overrides, using built-in defaults",
			zap.String("path", cfg.PDF.TextsPath), zap.Error(err))
		texts = nil
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	offerRepo := repository.NewOfferRepository(db)

	// Initialize services
	productService := service.NewProductService(productRepo, log)
	companyService := service.NewCompanyService(companyRepo, log)
	documentService := service.NewDocumentService(documentRepo, companyRepo, cfg.Documents.CompanyDocsBaseDir, log)
	settingService := service.NewSettingService(settingRepo, log)

	generator := offer.NewGenerator(offer.GeneratorParams{
		Products:           productService,
		Settings:           settingRepo,
		Documents:          documentService,
		Texts:              texts,
		DatasheetBaseDir:   cfg.Documents.DatasheetBaseDir,
		CompanyDocsBaseDir: cfg.Documents.CompanyDocsBaseDir,
		Logger:             log,
	})

	offerService := service.NewOfferService(offerRepo, companyRepo, generator, fileStorage, log)

	// Initialize middleware
	tokenManager := auth.NewTokenManager(&cfg.Auth)
	authMiddleware := auth.NewMiddleware(&cfg.Auth, tokenManager, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(tokenManager, &cfg.Auth, log)
	productHandler := handler.NewProductHandler(productService, log)
	companyHandler := handler.NewCompanyHandler(companyService, log)
	documentHandler := handler.NewDocumentHandler(documentService, log)
	settingHandler := handler.NewSettingHandler(settingService, log)
	offerHandler := handler.NewOfferHandler(offerService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		productHandler,
		companyHandler,
		documentHandler,
		settingHandler,
		offerHandler,
	)

	// Start scheduler with the retention sweep
	scheduler := jobs.NewScheduler(log)
	cleanupJob := jobs.NewOfferCleanupJob(offerRepo, fileStorage, cfg.Jobs.RetentionDuration(), log)
	if err := scheduler.Schedule(cleanupJob, cfg.Jobs.OfferCleanupSchedule); err != nil {
		log.Error("Failed to register offer cleanup job", zap.Error(err))
	} else {
		scheduler.Start()
		log.Info("Scheduler started",
			zap.String("cron_expr", cfg.Jobs.OfferCleanupSchedule),
			zap.Int("retention_days", cfg.Jobs.OfferRetentionDays),
		)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
