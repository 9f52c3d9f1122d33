package service

import (
	"context"
	"testing"
	"time"

	"ahorrapp/internal/dto"
	"ahorrapp/internal/models"
	"ahorrapp/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTransactionService(repo TransactionRepo) *TransactionService {
	return NewTransactionService(repo, store.NewTransactions(), zap.NewNop())
}

func seedRow(repo *fakeTransactionRepo, userID uuid.UUID, amount float64, typ models.TransactionType, category, date string) uuid.UUID {
	d, _ := time.Parse(dateLayout, date)
	id := uuid.New()
	repo.rows[id] = models.Transaction{
		ID: id, UserID: userID, Amount: amount, Type: typ, Category: category, Date: d,
	}
	return id
}

func TestTransactionService_SaveInsertsAndAppearsInFetch(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := newTransactionService(repo)
	userID := uuid.New()

	saved, err := svc.Save(context.Background(), userID, &dto.TransactionRequest{
		Amount: 42.5, Type: "expense", Category: "Comida", Date: "2025-01-10",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, saved.ID)

	fetched, err := svc.Fetch(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	require.Equal(t, saved.ID, fetched[0].ID)
}

func TestTransactionService_SaveWithIDReplacesExactlyOne(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := newTransactionService(repo)
	userID := uuid.New()

	id := seedRow(repo, userID, 10, models.TypeExpense, "Comida", "2025-01-05")
	seedRow(repo, userID, 20, models.TypeExpense, "Ocio", "2025-01-06")
	_, err := svc.Fetch(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), userID, &dto.TransactionRequest{
		ID: id.String(), Amount: 99, Type: "expense", Category: "Comida", Date: "2025-01-05",
	})
	require.NoError(t, err)

	collection := svc.Collection(userID)
	require.Len(t, collection, 2)
	for _, tx := range collection {
		if tx.ID == id {
			require.Equal(t, 99.0, tx.Amount)
		}
	}
}

func TestTransactionService_ValidationShortCircuits(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := newTransactionService(repo)
	userID := uuid.New()

	cases := []dto.TransactionRequest{
		{Amount: 0, Type: "expense", Category: "Comida", Date: "2025-01-10"},
		{Amount: -5, Type: "expense", Category: "Comida", Date: "2025-01-10"},
		{Amount: 10, Type: "expense", Category: "", Date: "2025-01-10"},
		{Amount: 10, Type: "expense", Category: "Comida", Date: ""},
		{Amount: 10, Type: "expense", Category: "Comida", Date: "10/01/2025"},
		{Amount: 10, Type: "transfer", Category: "Comida", Date: "2025-01-10"},
	}
	for _, req := range cases {
		_, err := svc.Save(context.Background(), userID, &req)
		require.ErrorIs(t, err, ErrValidation)
	}
	require.Zero(t, repo.calls, "no repository call on validation failure")
}

func TestTransactionService_SaveFailureLeavesMirrorUnchanged(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := newTransactionService(repo)
	userID := uuid.New()

	seedRow(repo, userID, 10, models.TypeExpense, "Comida", "2025-01-05")
	_, err := svc.Fetch(context.Background(), userID)
	require.NoError(t, err)

	repo.failAll = true
	_, err = svc.Save(context.Background(), userID, &dto.TransactionRequest{
		Amount: 42, Type: "expense", Category: "Ocio", Date: "2025-01-06",
	})
	require.Error(t, err)
	require.Len(t, svc.Collection(userID), 1)
}

func TestTransactionService_DeleteRemovesExactlyOne(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := newTransactionService(repo)
	userID := uuid.New()

	id := seedRow(repo, userID, 10, models.TypeExpense, "Comida", "2025-01-05")
	seedRow(repo, userID, 20, models.TypeExpense, "Ocio", "2025-01-06")
	_, err := svc.Fetch(context.Background(), userID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, id))

	collection := svc.Collection(userID)
	require.Len(t, collection, 1)
	require.NotEqual(t, id, collection[0].ID)
}

func TestTransactionService_DeleteUnknownIDKeepsCollection(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := newTransactionService(repo)
	userID := uuid.New()

	seedRow(repo, userID, 10, models.TypeExpense, "Comida", "2025-01-05")
	_, err := svc.Fetch(context.Background(), userID)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), userID, uuid.New())
	require.Error(t, err)
	require.Len(t, svc.Collection(userID), 1)
}

func TestTransactionService_FetchFailureKeepsPriorState(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := newTransactionService(repo)
	userID := uuid.New()

	seedRow(repo, userID, 10, models.TypeExpense, "Comida", "2025-01-05")
	_, err := svc.Fetch(context.Background(), userID)
	require.NoError(t, err)

	repo.failAll = true
	_, err = svc.Fetch(context.Background(), userID)
	require.Error(t, err)
	require.Len(t, svc.Collection(userID), 1)
}

func TestTransactionService_ListFiltersSortsAndPaginates(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := newTransactionService(repo)
	userID := uuid.New()

	seedRow(repo, userID, 100, models.TypeIncome, "Salario", "2025-01-05")
	seedRow(repo, userID, 40, models.TypeExpense, "Comida", "2025-01-10")
	seedRow(repo, userID, 15, models.TypeExpense, "Comida", "2025-02-01")

	result, err := svc.List(context.Background(), userID, ListQuery{Type: "expense", Sort: "amount", Order: "asc"})
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalCount)
	require.Equal(t, 1, result.TotalPages)
	require.Equal(t, 15.0, result.Items[0].Amount)
	require.Equal(t, 40.0, result.Items[1].Amount)
}

func TestTransactionService_ListByDay(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := newTransactionService(repo)
	userID := uuid.New()

	seedRow(repo, userID, 40, models.TypeExpense, "Comida", "2025-01-10")
	seedRow(repo, userID, 15, models.TypeExpense, "Comida", "2025-02-01")

	result, err := svc.List(context.Background(), userID, ListQuery{Date: "2025-01-10"})
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalCount)
	require.Equal(t, 40.0, result.Items[0].Amount)
}

func TestTransactionService_ListRejectsBadControls(t *testing.T) {
	svc := newTransactionService(newFakeTransactionRepo())
	userID := uuid.New()

	_, err := svc.List(context.Background(), userID, ListQuery{Type: "bogus"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.List(context.Background(), userID, ListQuery{Sort: "bogus"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.List(context.Background(), userID, ListQuery{Order: "bogus"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.List(context.Background(), userID, ListQuery{Date: "01-2025"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestTransactionService_ListEmptyCollection(t *testing.T) {
	svc := newTransactionService(newFakeTransactionRepo())

	result, err := svc.List(context.Background(), uuid.New(), ListQuery{})
	require.NoError(t, err)
	require.Empty(t, result.Items)
	require.Equal(t, 0, result.TotalPages)
	require.Equal(t, 1, result.Page)
}
