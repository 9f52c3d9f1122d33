package service

import (
	"context"
	"errors"

	"ahorrapp/internal/models"
	"ahorrapp/internal/repository"

	"github.com/google/uuid"
)

type fakeTransactionRepo struct {
	rows    map[uuid.UUID]models.Transaction
	calls   int
	failAll bool
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{rows: make(map[uuid.UUID]models.Transaction)}
}

func (f *fakeTransactionRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	f.calls++
	if f.failAll {
		return nil, errors.New("remote failure")
	}
	var out []models.Transaction
	for _, tx := range f.rows {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) Create(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	f.calls++
	if f.failAll {
		return models.Transaction{}, errors.New("remote failure")
	}
	f.rows[tx.ID] = tx
	return tx, nil
}

func (f *fakeTransactionRepo) Update(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	f.calls++
	if f.failAll {
		return models.Transaction{}, errors.New("remote failure")
	}
	existing, ok := f.rows[tx.ID]
	if !ok || existing.UserID != tx.UserID {
		return models.Transaction{}, repository.ErrNotFound
	}
	tx.CreatedAt = existing.CreatedAt
	f.rows[tx.ID] = tx
	return tx, nil
}

func (f *fakeTransactionRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	f.calls++
	if f.failAll {
		return errors.New("remote failure")
	}
	tx, ok := f.rows[id]
	if !ok || tx.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeBudgetRepo struct {
	rows    map[uuid.UUID]models.Budget
	calls   int
	failAll bool
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{rows: make(map[uuid.UUID]models.Budget)}
}

func (f *fakeBudgetRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Budget, error) {
	f.calls++
	if f.failAll {
		return nil, errors.New("remote failure")
	}
	var out []models.Budget
	for _, b := range f.rows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBudgetRepo) Create(_ context.Context, b models.Budget) (models.Budget, error) {
	f.calls++
	if f.failAll {
		return models.Budget{}, errors.New("remote failure")
	}
	f.rows[b.ID] = b
	return b, nil
}

func (f *fakeBudgetRepo) Update(_ context.Context, b models.Budget) (models.Budget, error) {
	f.calls++
	existing, ok := f.rows[b.ID]
	if !ok || existing.UserID != b.UserID {
		return models.Budget{}, repository.ErrNotFound
	}
	b.CreatedAt = existing.CreatedAt
	f.rows[b.ID] = b
	return b, nil
}

func (f *fakeBudgetRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	f.calls++
	b, ok := f.rows[id]
	if !ok || b.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeUserRepo struct {
	byID    map[uuid.UUID]*models.User
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hashedPassword string) error {
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hashedPassword
	return nil
}

type fakeMFARepo struct {
	factors map[uuid.UUID]*models.MFAFactor
}

func newFakeMFARepo() *fakeMFARepo {
	return &fakeMFARepo{factors: make(map[uuid.UUID]*models.MFAFactor)}
}

func (f *fakeMFARepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.MFAFactor, error) {
	if factor, ok := f.factors[userID]; ok {
		return factor, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMFARepo) Replace(_ context.Context, factor *models.MFAFactor) error {
	f.factors[factor.UserID] = factor
	return nil
}

func (f *fakeMFARepo) UpdateStatus(_ context.Context, userID uuid.UUID, status models.MFAFactorStatus) error {
	factor, ok := f.factors[userID]
	if !ok {
		return repository.ErrNotFound
	}
	factor.Status = status
	return nil
}

func (f *fakeMFARepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	if _, ok := f.factors[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.factors, userID)
	return nil
}
