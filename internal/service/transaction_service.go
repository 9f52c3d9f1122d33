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
)

const dateLayout = "2006-01-02"

type TransactionRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	Update(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// TransactionService owns the user's transaction collection: repository
// writes first, then the in-memory mirror, so a failed remote call never
// leaves a phantom row locally.
type TransactionService struct {
	repo   TransactionRepo
	store  *store.Transactions
	logger *zap.Logger
}

func NewTransactionService(repo TransactionRepo, txStore *store.Transactions, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		repo:   repo,
		store:  txStore,
		logger: logger,
	}
}

// ListQuery carries the list view's controls. Zero values mean all
// types, no day filter, date-descending order, page 1.
type ListQuery struct {
	Type  string
	Date  string
	Sort  string
	Order string
	Page  int
}

type ListResult struct {
	Items      []models.Transaction
	Page       int
	TotalPages int
	TotalCount int
}

// Fetch reloads the user's rows from the repository, replacing the
// mirror. On failure the prior mirror state is kept.
func (s *TransactionService) Fetch(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to fetch transactions", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}
	s.store.Replace(userID, rows)
	return s.store.List(userID), nil
}

// Ensure loads the mirror once per session; later calls serve from it.
func (s *TransactionService) Ensure(ctx context.Context, userID uuid.UUID) error {
	if s.store.Revision(userID) > 0 {
		return nil
	}
	_, err := s.Fetch(ctx, userID)
	return err
}

// Collection returns the full mirrored collection, date descending.
func (s *TransactionService) Collection(userID uuid.UUID) []models.Transaction {
	return s.store.List(userID)
}

func (s *TransactionService) Revision(userID uuid.UUID) uint64 {
	return s.store.Revision(userID)
}

// List applies the filter, sort and pagination controls to the user's
// collection, fetching it first if this session has not loaded it yet.
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, q ListQuery) (*ListResult, error) {
	typeFilter, day, sortKey, order, page, err := parseListQuery(q)
	if err != nil {
		return nil, err
	}

	if err := s.Ensure(ctx, userID); err != nil {
		return nil, err
	}

	filtered := derive.Filter(s.store.List(userID), typeFilter, day)
	sorted := derive.Sort(filtered, sortKey, order)
	items, totalPages := derive.Paginate(sorted, page)

	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	return &ListResult{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: len(sorted),
	}, nil
}

// Save inserts when the request carries no id and updates otherwise.
// Validation happens before any repository call; the canonical stored
// row is merged into the mirror only on success.
func (s *TransactionService) Save(ctx context.Context, userID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	if userID == uuid.Nil {
		return nil, ErrNoSession
	}

	date, err := validateTransaction(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx := models.Transaction{
		UserID:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		Date:        date,
		UpdatedAt:   now,
	}

	var stored models.Transaction
	if req.ID == "" {
		tx.ID = uuid.New()
		tx.CreatedAt = now
		stored, err = s.repo.Create(ctx, tx)
	} else {
		tx.ID, err = uuid.Parse(req.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid transaction id", ErrValidation)
		}
		stored, err = s.repo.Update(ctx, tx)
	}
	if err != nil {
		s.logger.Error("Failed to save transaction", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	s.store.Upsert(userID, stored)
	return &stored, nil
}

// Delete removes the row remotely first; the mirror is only touched
// after the repository confirms.
func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		s.logger.Warn("Failed to delete transaction",
			zap.String("user_id", userID.String()),
			zap.String("id", id.String()),
			zap.Error(err))
		return err
	}
	s.store.Remove(userID, id)
	return nil
}

func validateTransaction(req *dto.TransactionRequest) (time.Time, error) {
	if req.Amount <= 0 {
		return time.Time{}, fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	}
	if req.Category == "" {
		return time.Time{}, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if req.Type != string(models.TypeIncome) && req.Type != string(models.TypeExpense) {
		return time.Time{}, fmt.Errorf("%w: type must be income or expense", ErrValidation)
	}
	if req.Date == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return date, nil
}

func parseListQuery(q ListQuery) (derive.TypeFilter, *time.Time, derive.SortKey, derive.SortOrder, int, error) {
	typeFilter := derive.FilterAll
	switch q.Type {
	case "", "all":
	case "income":
		typeFilter = derive.FilterIncome
	case "expense":
		typeFilter = derive.FilterExpense
	default:
		return "", nil, "", "", 0, fmt.Errorf("%w: type must be all, income or expense", ErrValidation)
	}

	var day *time.Time
	if q.Date != "" {
		parsed, err := time.Parse(dateLayout, q.Date)
		if err != nil {
			return "", nil, "", "", 0, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
		day = &parsed
	}

	sortKey := derive.SortByDate
	switch q.Sort {
	case "", "date":
	case "amount":
		sortKey = derive.SortByAmount
	case "description":
		sortKey = derive.SortByDescription
	default:
		return "", nil, "", "", 0, fmt.Errorf("%w: sort must be date, amount or description", ErrValidation)
	}

	order := derive.OrderDesc
	switch q.Order {
	case "", "desc":
	case "asc":
		order = derive.OrderAsc
	default:
		return "", nil, "", "", 0, fmt.Errorf("%w: order must be asc or desc", ErrValidation)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	return typeFilter, day, sortKey, order, page, nil
}
