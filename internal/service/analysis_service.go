package service

import (
	"context"
	"fmt"
	"time"

	"ahorrapp/internal/cache"
	"ahorrapp/internal/derive"
	"ahorrapp/internal/dto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	analysisCacheSize = 256
	analysisCacheTTL  = 10 * time.Minute
)

// AnalysisService serves the derived chart data. All three views read
// the *unfiltered* collection; the list view's controls never leak in
// here. Results are memoized per (user, collection revision), so a cache
// hit is only possible while the collection is unchanged.
type AnalysisService struct {
	transactions *TransactionService
	summaries    *cache.LRUCache[dto.SummaryResponse]
	categories   *cache.LRUCache[[]dto.CategoryTotalResponse]
	monthly      *cache.LRUCache[dto.MonthlySeriesResponse]
	logger       *zap.Logger
}

func NewAnalysisService(transactions *TransactionService, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		transactions: transactions,
		summaries:    cache.NewLRUCache[dto.SummaryResponse](analysisCacheSize, analysisCacheTTL),
		categories:   cache.NewLRUCache[[]dto.CategoryTotalResponse](analysisCacheSize, analysisCacheTTL),
		monthly:      cache.NewLRUCache[dto.MonthlySeriesResponse](analysisCacheSize, analysisCacheTTL),
		logger:       logger,
	}
}

func (s *AnalysisService) Summary(ctx context.Context, userID uuid.UUID) (*dto.SummaryResponse, error) {
	if err := s.transactions.Ensure(ctx, userID); err != nil {
		return nil, err
	}

	key := s.cacheKey(userID)
	if cached, ok := s.summaries.Get(key); ok {
		return &cached, nil
	}

	summary := derive.Summarize(s.transactions.Collection(userID))
	resp := dto.SummaryResponse{
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		Balance:      summary.Balance,
	}
	s.summaries.Set(key, resp)
	return &resp, nil
}

func (s *AnalysisService) ExpensesByCategory(ctx context.Context, userID uuid.UUID) ([]dto.CategoryTotalResponse, error) {
	if err := s.transactions.Ensure(ctx, userID); err != nil {
		return nil, err
	}

	key := s.cacheKey(userID)
	if cached, ok := s.categories.Get(key); ok {
		return cached, nil
	}

	totals := derive.ExpensesByCategory(s.transactions.Collection(userID))
	resp := make([]dto.CategoryTotalResponse, 0, len(totals))
	for _, ct := range totals {
		resp = append(resp, dto.CategoryTotalResponse{Category: ct.Category, Total: ct.Total})
	}
	s.categories.Set(key, resp)
	return resp, nil
}

func (s *AnalysisService) MonthlySeries(ctx context.Context, userID uuid.UUID) (*dto.MonthlySeriesResponse, error) {
	if err := s.transactions.Ensure(ctx, userID); err != nil {
		return nil, err
	}

	key := s.cacheKey(userID)
	if cached, ok := s.monthly.Get(key); ok {
		return &cached, nil
	}

	series := derive.Monthly(s.transactions.Collection(userID))
	resp := dto.MonthlySeriesResponse{
		Labels:  series.Labels,
		Income:  series.Income,
		Expense: series.Expense,
	}
	s.monthly.Set(key, resp)
	return &resp, nil
}

func (s *AnalysisService) cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%d", userID, s.transactions.Revision(userID))
}
