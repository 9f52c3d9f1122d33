package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"ahorrapp/internal/models"
	"ahorrapp/internal/repository"
	"ahorrapp/pkg/auth"
	"ahorrapp/pkg/config"
	"ahorrapp/pkg/logger"
	"ahorrapp/pkg/postgres"

	"github.com/bxcodec/faker/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeds the database with demo accounts and a few months of fake
// transactions so charts and budget joins have something to show.
func main() {
	users := flag.Int("users", 3, "number of demo users")
	months := flag.Int("months", 4, "months of transaction history per user")
	password := flag.String("password", "demo1234", "password for every demo user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	if err := postgres.RunMigrations(&cfg.Database); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)

	hash, err := auth.HashPassword(*password)
	if err != nil {
		appLogger.Fatal("Failed to hash password", zap.Error(err))
	}

	appLogger.Info("Seeding database", zap.Int("users", *users), zap.Int("months", *months))

	for i := 0; i < *users; i++ {
		now := time.Now()
		user := &models.User{
			ID:        uuid.New(),
			Username:  faker.Username(),
			Email:     faker.Email(),
			Password:  hash,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			appLogger.Error("Failed to create demo user", zap.String("email", user.Email), zap.Error(err))
			continue
		}

		txCount := seedTransactions(ctx, txRepo, user.ID, *months, appLogger)
		budgetCount := seedBudgets(ctx, budgetRepo, user.ID, appLogger)

		appLogger.Info("Seeded demo user",
			zap.String("email", user.Email),
			zap.Int("transactions", txCount),
			zap.Int("budgets", budgetCount),
		)
	}

	appLogger.Info("Database seeding completed")
}

func seedTransactions(ctx context.Context, repo *repository.TransactionRepository, userID uuid.UUID, months int, logger *zap.Logger) int {
	count := 0
	now := time.Now()

	for m := 0; m < months; m++ {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -m, 0)

		// One salary entry per month, then a handful of expenses.
		salary := models.Transaction{
			ID:          uuid.New(),
			UserID:      userID,
			Description: "Nómina " + monthStart.Format("January"),
			Amount:      1800 + float64(rand.Intn(600)),
			Type:        models.TypeIncome,
			Category:    "Salario",
			Date:        monthStart.AddDate(0, 0, rand.Intn(3)),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := repo.Create(ctx, salary); err != nil {
			logger.Error("Failed to create transaction", zap.Error(err))
		} else {
			count++
		}

		expenses := 5 + rand.Intn(6)
		for i := 0; i < expenses; i++ {
			category := expenseCategories[rand.Intn(len(expenseCategories))]
			tx := models.Transaction{
				ID:          uuid.New(),
				UserID:      userID,
				Description: faker.Word() + " " + faker.Word(),
				Amount:      float64(5+rand.Intn(120)) + rand.Float64(),
				Type:        models.TypeExpense,
				Category:    category,
				Date:        monthStart.AddDate(0, 0, rand.Intn(27)),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if _, err := repo.Create(ctx, tx); err != nil {
				logger.Error("Failed to create transaction", zap.Error(err))
				continue
			}
			count++
		}
	}

	return count
}

func seedBudgets(ctx context.Context, repo *repository.BudgetRepository, userID uuid.UUID, logger *zap.Logger) int {
	count := 0
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	for _, category := range expenseCategories[:3] {
		b := models.Budget{
			ID:        uuid.New(),
			UserID:    userID,
			Category:  category,
			Amount:    200 + float64(rand.Intn(400)),
			StartDate: monthStart,
			EndDate:   &monthEnd,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := repo.Create(ctx, b); err != nil {
			logger.Error("Failed to create budget", zap.Error(err))
			continue
		}
		count++
	}

	return count
}

var expenseCategories = []string{"Comida", "Vivienda", "Transporte", "Ocio", "Otros"}
