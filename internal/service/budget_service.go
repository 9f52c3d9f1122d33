package service

import (
	"context"
	"fmt"
	"time"

	"ahorrapp/internal/derive"
	"ahorrapp/internal/dto"
	"ahorrapp/internal/models"
	"ahorrapp/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type BudgetRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Budget, error)
	Create(ctx context.Context, b models.Budget) (models.Budget, error)
	Update(ctx context.Context, b models.Budget) (models.Budget, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// BudgetWithSpending joins a budget with the expense transactions inside
// its category and date range.
type BudgetWithSpending struct {
	models.Budget
	SpentAmount     float64
	RemainingAmount float64
	Overspent       bool
	FullySpent      bool
}

type BudgetService struct {
	repo         BudgetRepo
	store        *store.Budgets
	transactions *TransactionService
	logger       *zap.Logger
}

func NewBudgetService(repo BudgetRepo, budgetStore *store.Budgets, transactions *TransactionService, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		repo:         repo,
		store:        budgetStore,
		transactions: transactions,
		logger:       logger,
	}
}

// ListWithSpending loads budgets and the transaction collection
// concurrently, then derives spending per budget. The join recomputes on
// every call because either collection may have changed.
func (s *BudgetService) ListWithSpending(ctx context.Context, userID uuid.UUID) ([]BudgetWithSpending, error) {
	if userID == uuid.Nil {
		return nil, ErrNoSession
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.repo.ListByUser(gctx, userID)
		if err != nil {
			return err
		}
		s.store.Replace(userID, rows)
		return nil
	})
	g.Go(func() error {
		return s.transactions.Ensure(gctx, userID)
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load budgets", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	txs := s.transactions.Collection(userID)
	budgets := s.store.List(userID)

	out := make([]BudgetWithSpending, 0, len(budgets))
	for _, b := range budgets {
		spent := derive.BudgetSpending(b, txs)
		out = append(out, BudgetWithSpending{
			Budget:          b,
			SpentAmount:     spent,
			RemainingAmount: b.Amount - spent,
			Overspent:       spent > b.Amount,
			FullySpent:      spent >= b.Amount,
		})
	}
	return out, nil
}

// Add stamps the budget with the session's user id and inserts it.
// Without a session the call fails locally, before any repository call.
func (s *BudgetService) Add(ctx context.Context, userID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error) {
	if userID == uuid.Nil {
		return nil, ErrNoSession
	}

	b, err := budgetFromRequest(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	b.ID = uuid.New()
	b.UserID = userID
	b.CreatedAt = now
	b.UpdatedAt = now

	stored, err := s.repo.Create(ctx, b)
	if err != nil {
		s.logger.Error("Failed to add budget", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	s.store.Upsert(userID, stored)
	return &stored, nil
}

func (s *BudgetService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error) {
	if userID == uuid.Nil {
		return nil, ErrNoSession
	}

	b, err := budgetFromRequest(req)
	if err != nil {
		return nil, err
	}

	b.ID = id
	b.UserID = userID
	b.UpdatedAt = time.Now()

	stored, err := s.repo.Update(ctx, b)
	if err != nil {
		s.logger.Error("Failed to update budget",
			zap.String("user_id", userID.String()),
			zap.String("id", id.String()),
			zap.Error(err))
		return nil, err
	}

	s.store.Upsert(userID, stored)
	return &stored, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrNoSession
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.store.Remove(userID, id)
	return nil
}

func budgetFromRequest(req *dto.BudgetRequest) (models.Budget, error) {
	if req.Amount <= 0 {
		return models.Budget{}, fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	}
	if req.Category == "" {
		return models.Budget{}, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if req.StartDate == "" {
		return models.Budget{}, fmt.Errorf("%w: start date is required", ErrValidation)
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return models.Budget{}, fmt.Errorf("%w: start date must be YYYY-MM-DD", ErrValidation)
	}

	b := models.Budget{
		Category:  req.Category,
		Amount:    req.Amount,
		StartDate: start,
	}

	if req.EndDate != "" {
		end, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return models.Budget{}, fmt.Errorf("%w: end date must be YYYY-MM-DD", ErrValidation)
		}
		if end.Before(start) {
			return models.Budget{}, fmt.Errorf("%w: end date cannot precede start date", ErrValidation)
		}
		b.EndDate = &end
	}

	return b, nil
}
