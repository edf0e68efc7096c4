package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lengolf/pos-api/internal/application/service"
	"github.com/lengolf/pos-api/internal/config"
	"github.com/lengolf/pos-api/internal/domain/entity"
	"github.com/lengolf/pos-api/internal/infrastructure/database"
	"github.com/lengolf/pos-api/internal/infrastructure/repository"
	"github.com/lengolf/pos-api/internal/presentation/http/handler"
	"github.com/lengolf/pos-api/internal/presentation/http/routes"
	"github.com/lengolf/pos-api/pkg/printer"
	"github.com/lengolf/pos-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	sessionRepo := repository.NewSessionRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	sequenceRepo := repository.NewReceiptSequenceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Periodically sweep expired idempotency keys
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				logrus.Warnf("Failed to clean up expired idempotency keys: %v", err)
			}
		}
	}()

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.Device,
		cfg.Printer.Baud,
		cfg.Printer.Address,
	)
	if err != nil {
		logrus.Warnf("Failed to initialize printer, printing disabled: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	header := entity.ReceiptHeader{
		BusinessName: cfg.Business.Name,
		AddressLine1: cfg.Business.AddressLine1,
		AddressLine2: cfg.Business.AddressLine2,
		Phone:        cfg.Business.Phone,
		TaxID:        cfg.Business.TaxID,
	}

	// Initialize services
	settlementService := service.NewSettlementService(ledgerRepo, transactionRepo, sessionRepo, sequenceRepo)
	transactionService := service.NewTransactionService(transactionRepo)
	sessionService := service.NewSessionService(sessionRepo)
	receiptService := service.NewReceiptService(transactionRepo, sessionRepo, header, cfg.Business.Footer)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Settlement:  handler.NewSettlementHandler(settlementService, receiptService, printerService),
		Transaction: handler.NewTransactionHandler(transactionService, receiptService, printerService),
		Session:     handler.NewSessionHandler(sessionService, transactionService, receiptService, printerService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logrus.Infof("Starting %s server on port %s (env: %s)", cfg.App.Name, port, cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
