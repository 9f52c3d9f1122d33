package service

import (
	"context"
	"testing"

	"ahorrapp/internal/dto"
	"ahorrapp/internal/models"
	"ahorrapp/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAnalysisFixture() (*fakeTransactionRepo, *TransactionService, *AnalysisService) {
	repo := newFakeTransactionRepo()
	txService := NewTransactionService(repo, store.NewTransactions(), zap.NewNop())
	return repo, txService, NewAnalysisService(txService, zap.NewNop())
}

func TestAnalysisService_Summary(t *testing.T) {
	repo, _, svc := newAnalysisFixture()
	userID := uuid.New()

	seedRow(repo, userID, 100, models.TypeIncome, "Salario", "2025-01-05")
	seedRow(repo, userID, 40, models.TypeExpense, "Comida", "2025-01-10")
	seedRow(repo, userID, 15, models.TypeExpense, "Comida", "2025-02-01")

	summary, err := svc.Summary(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 100.0, summary.TotalIncome)
	require.Equal(t, 55.0, summary.TotalExpense)
	require.Equal(t, 45.0, summary.Balance)
}

func TestAnalysisService_SummaryEmptyCollection(t *testing.T) {
	_, _, svc := newAnalysisFixture()

	summary, err := svc.Summary(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Equal(t, 0.0, summary.Balance)
}

func TestAnalysisService_SummaryMemoizedPerRevision(t *testing.T) {
	repo, txService, svc := newAnalysisFixture()
	userID := uuid.New()

	seedRow(repo, userID, 100, models.TypeIncome, "Salario", "2025-01-05")

	_, err := svc.Summary(context.Background(), userID)
	require.NoError(t, err)
	callsAfterFirst := repo.calls

	// Same revision: served from cache, no extra repository traffic.
	_, err = svc.Summary(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, callsAfterFirst, repo.calls)

	// A mutation bumps the revision, so the next read recomputes.
	_, err = txService.Save(context.Background(), userID, &dto.TransactionRequest{
		Amount: 30, Type: "expense", Category: "Ocio", Date: "2025-01-06",
	})
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 70.0, summary.Balance)
}

func TestAnalysisService_CategoriesIgnoreListFilters(t *testing.T) {
	repo, txService, svc := newAnalysisFixture()
	userID := uuid.New()

	seedRow(repo, userID, 40, models.TypeExpense, "Comida", "2025-01-10")
	seedRow(repo, userID, 20, models.TypeExpense, "Transporte", "2025-02-01")

	// A narrow list view must not leak into the analysis data.
	_, err := txService.List(context.Background(), userID, ListQuery{Type: "income", Date: "2025-01-10"})
	require.NoError(t, err)

	categories, err := svc.ExpensesByCategory(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, categories, 2)
}

func TestAnalysisService_MonthlySeries(t *testing.T) {
	repo, _, svc := newAnalysisFixture()
	userID := uuid.New()

	seedRow(repo, userID, 100, models.TypeIncome, "Salario", "2025-01-05")
	seedRow(repo, userID, 40, models.TypeExpense, "Comida", "2025-01-10")
	seedRow(repo, userID, 15, models.TypeExpense, "Comida", "2025-02-01")

	series, err := svc.MonthlySeries(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, []string{"2025-01", "2025-02"}, series.Labels)
	require.Equal(t, []float64{100, 0}, series.Income)
	require.Equal(t, []float64{40, 15}, series.Expense)
}
