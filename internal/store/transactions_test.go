package store

import (
	"testing"
	"time"

	"ahorrapp/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactions_ReplaceSortsDateDescending(t *testing.T) {
	s := NewTransactions()
	userID := uuid.New()

	s.Replace(userID, []models.Transaction{
		{ID: uuid.New(), Date: day(2025, time.January, 5)},
		{ID: uuid.New(), Date: day(2025, time.March, 1)},
		{ID: uuid.New(), Date: day(2025, time.February, 10)},
	})

	got := s.List(userID)
	require.Len(t, got, 3)
	require.Equal(t, day(2025, time.March, 1), got[0].Date)
	require.Equal(t, day(2025, time.February, 10), got[1].Date)
	require.Equal(t, day(2025, time.January, 5), got[2].Date)
}

func TestTransactions_UpsertReplacesByID(t *testing.T) {
	s := NewTransactions()
	userID := uuid.New()
	id := uuid.New()

	s.Replace(userID, []models.Transaction{
		{ID: id, Amount: 10, Date: day(2025, time.January, 1)},
		{ID: uuid.New(), Amount: 20, Date: day(2025, time.January, 2)},
	})

	s.Upsert(userID, models.Transaction{ID: id, Amount: 99, Date: day(2025, time.January, 1)})

	got := s.List(userID)
	require.Len(t, got, 2)
	for _, tx := range got {
		if tx.ID == id {
			require.Equal(t, 99.0, tx.Amount)
		}
	}
}

func TestTransactions_UpsertAppendsNew(t *testing.T) {
	s := NewTransactions()
	userID := uuid.New()

	s.Upsert(userID, models.Transaction{ID: uuid.New(), Date: day(2025, time.January, 1)})
	require.Len(t, s.List(userID), 1)
}

func TestTransactions_RemoveExactlyOne(t *testing.T) {
	s := NewTransactions()
	userID := uuid.New()
	id := uuid.New()

	s.Replace(userID, []models.Transaction{
		{ID: id, Date: day(2025, time.January, 1)},
		{ID: uuid.New(), Date: day(2025, time.January, 2)},
	})

	s.Remove(userID, id)
	got := s.List(userID)
	require.Len(t, got, 1)
	require.NotEqual(t, id, got[0].ID)
}

func TestTransactions_RemoveUnknownIDKeepsRevision(t *testing.T) {
	s := NewTransactions()
	userID := uuid.New()

	s.Replace(userID, []models.Transaction{{ID: uuid.New(), Date: day(2025, time.January, 1)}})
	rev := s.Revision(userID)

	s.Remove(userID, uuid.New())
	require.Equal(t, rev, s.Revision(userID))
	require.Len(t, s.List(userID), 1)
}

func TestTransactions_RevisionAdvancesOnMutation(t *testing.T) {
	s := NewTransactions()
	userID := uuid.New()
	require.Equal(t, uint64(0), s.Revision(userID))

	s.Replace(userID, nil)
	rev1 := s.Revision(userID)
	require.Greater(t, rev1, uint64(0))

	s.Upsert(userID, models.Transaction{ID: uuid.New(), Date: day(2025, time.January, 1)})
	require.Greater(t, s.Revision(userID), rev1)
}

func TestTransactions_TiesKeepInsertionOrder(t *testing.T) {
	s := NewTransactions()
	userID := uuid.New()
	d := day(2025, time.January, 1)

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	s.Replace(userID, []models.Transaction{
		{ID: a, Date: d},
		{ID: b, Date: d},
		{ID: c, Date: d},
	})

	got := s.List(userID)
	require.Equal(t, []uuid.UUID{a, b, c}, []uuid.UUID{got[0].ID, got[1].ID, got[2].ID})
}

func TestTransactions_UsersAreIsolated(t *testing.T) {
	s := NewTransactions()
	u1, u2 := uuid.New(), uuid.New()

	s.Replace(u1, []models.Transaction{{ID: uuid.New(), Date: day(2025, time.January, 1)}})
	require.Empty(t, s.List(u2))
}

func TestTransactions_Clear(t *testing.T) {
	s := NewTransactions()
	userID := uuid.New()

	s.Replace(userID, []models.Transaction{{ID: uuid.New(), Date: day(2025, time.January, 1)}})
	s.Clear(userID)

	require.Empty(t, s.List(userID))
	require.Equal(t, uint64(0), s.Revision(userID))
}

func TestBudgets_CRUDAndSorting(t *testing.T) {
	s := NewBudgets()
	userID := uuid.New()
	id := uuid.New()

	s.Replace(userID, []models.Budget{
		{ID: id, Category: "Comida", StartDate: day(2025, time.January, 1)},
		{ID: uuid.New(), Category: "Ocio", StartDate: day(2025, time.March, 1)},
	})

	got := s.List(userID)
	require.Len(t, got, 2)
	require.Equal(t, "Ocio", got[0].Category)

	s.Upsert(userID, models.Budget{ID: id, Category: "Comida", Amount: 150, StartDate: day(2025, time.January, 1)})
	got = s.List(userID)
	require.Len(t, got, 2)
	require.Equal(t, 150.0, got[1].Amount)

	s.Remove(userID, id)
	require.Len(t, s.List(userID), 1)
}
