package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ahorrapp/internal/api"
	"ahorrapp/internal/api/handlers"
	"ahorrapp/internal/repository"
	"ahorrapp/internal/service"
	"ahorrapp/internal/store"
	"ahorrapp/pkg/auth"
	"ahorrapp/pkg/config"
	"ahorrapp/pkg/logger"
	"ahorrapp/pkg/postgres"

	"go.uber.org/zap"
)

// @title Ahorrapp API
// @version 1.0
// @description Personal finance tracker: transactions, budgets, analysis and receipt scanning
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Ahorrapp service")

	// Initialize database
	ctx := context.Background()
	if err := postgres.RunMigrations(&cfg.Database); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	mfaRepo := repository.NewMFARepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	txService := service.NewTransactionService(txRepo, store.NewTransactions(), appLogger)
	budgetService := service.NewBudgetService(budgetRepo, store.NewBudgets(), txService, appLogger)
	analysisService := service.NewAnalysisService(txService, appLogger)
	authService := service.NewAuthService(userRepo, mfaRepo, jwtManager, appLogger)
	mfaService := service.NewMFAService(mfaRepo, appLogger)
	receiptService := service.NewReceiptService(service.NewTesseractExtractor(&cfg.OCR), appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	txHandler := handlers.NewTransactionHandler(txService, appLogger)
	budgetHandler := handlers.NewBudgetHandler(budgetService, appLogger)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, appLogger)
	mfaHandler := handlers.NewMFAHandler(mfaService, appLogger)
	receiptHandler := handlers.NewReceiptHandler(receiptService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, txHandler, budgetHandler, analysisHandler, mfaHandler, receiptHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
