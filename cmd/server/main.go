package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swasthya/migrant-access-api/internal/client"
	"github.com/swasthya/migrant-access-api/internal/config"
	"github.com/swasthya/migrant-access-api/internal/dao"
	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/router"
	"github.com/swasthya/migrant-access-api/internal/service"
)

// Version information (set by build script)
var (
	version   = "dev"
	buildDate = "unknown"
)

// expirySweepInterval is how often stale pending requests are swept.
// Expiry is also enforced lazily at every point of use, so the sweep only
// keeps the table and audit trail tidy.
const expirySweepInterval = time.Minute

func main() {
	// Set Gin to release mode by default (can be overridden by GIN_MODE env var)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	logger.WithFields(logrus.Fields{
		"version":    version,
		"build_date": buildDate,
	}).Info("Starting Migrant Access API Server...")

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Set log level from config
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}

	logger.WithFields(logrus.Fields{
		"config_path": configPath,
		"log_level":   logger.GetLevel().String(),
	}).Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.Initialize(&cfg.Database.Access, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	// Verify database connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.HealthCheck(ctx); err != nil {
		logger.WithError(err).Fatal("Database health check failed")
	}

	logger.Info("Database connection established successfully")

	// Initialize DAOs
	requestDAO := dao.NewAccessRequestDAO(db)
	codeDAO := dao.NewOneTimeCodeDAO(db)
	grantDAO := dao.NewAccessGrantDAO(db)
	recordDAO := dao.NewHealthRecordDAO(db)
	migrantDAO := dao.NewMigrantDAO(db)
	auditDAO := dao.NewStatusAuditDAO(db)

	logger.Info("DAOs initialized successfully")

	// Initialize outbound clients
	deliveryClient := client.NewDeliveryClient(&cfg.Delivery, logger)
	summarizerClient := client.NewSummarizerClient(&cfg.Summarizer, logger)
	logger.WithFields(logrus.Fields{
		"delivery_enabled":   cfg.Delivery.Enabled,
		"summarizer_enabled": summarizerClient.IsEnabled(),
	}).Info("Outbound clients initialized")

	// Initialize services
	requestService := service.NewAccessRequestService(
		db,
		requestDAO,
		codeDAO,
		auditDAO,
		migrantDAO,
		deliveryClient,
		&cfg.Access,
		logger,
	)

	verifierService := service.NewVerifierService(
		db,
		requestDAO,
		codeDAO,
		grantDAO,
		auditDAO,
		&cfg.Access,
		logger,
	)

	recordService := service.NewRecordService(
		grantDAO,
		requestDAO,
		migrantDAO,
		recordDAO,
		logger,
	)

	summaryService := service.NewSummaryService(recordService, summarizerClient, logger)

	logger.Info("Services initialized successfully")

	// Background sweep of stale pending requests
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(expirySweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if _, svcErr := requestService.ExpireStaleRequests(sweepCtx); svcErr != nil {
					logger.WithField("code", svcErr.Code).Warn("Expiry sweep failed")
				}
			}
		}
	}()

	// Setup router
	ginRouter := router.SetupRouter(requestService, verifierService, recordService, summaryService)

	// Configure HTTP server
	serverAddr := cfg.Server.GetServerAddress()
	server := &http.Server{
		Addr:           serverAddr,
		Handler:        ginRouter,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in a goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"hostname": cfg.Server.Hostname,
			"port":     cfg.Server.Port,
			"addr":     serverAddr,
		}).Info("Starting HTTP server...")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithField("address", serverAddr).Info("Server is running")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	stopSweep()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited gracefully")
}
