package repository

import (
	"context"
	"errors"
	"strings"

	"ahorrapp/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var budgetColumns = []string{
	"id", "user_id", "category", "amount", "start_date", "end_date", "created_at", "updated_at",
}

type BudgetRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBudgetRepository(db *pgxpool.Pool, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BudgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Budget, error) {
	query := squirrel.Select(budgetColumns...).
		From("budgets").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_date DESC", "created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.Category, &b.Amount, &b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (r *BudgetRepository) Create(ctx context.Context, b models.Budget) (models.Budget, error) {
	query := squirrel.Insert("budgets").
		Columns(budgetColumns...).
		Values(b.ID, b.UserID, b.Category, b.Amount, b.StartDate, b.EndDate, b.CreatedAt, b.UpdatedAt).
		Suffix("RETURNING " + strings.Join(budgetColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return models.Budget{}, err
	}

	return r.scanOne(ctx, sql, args)
}

func (r *BudgetRepository) Update(ctx context.Context, b models.Budget) (models.Budget, error) {
	query := squirrel.Update("budgets").
		Set("category", b.Category).
		Set("amount", b.Amount).
		Set("start_date", b.StartDate).
		Set("end_date", b.EndDate).
		Set("updated_at", b.UpdatedAt).
		Where(squirrel.Eq{"id": b.ID, "user_id": b.UserID}).
		Suffix("RETURNING " + strings.Join(budgetColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return models.Budget{}, err
	}

	stored, err := r.scanOne(ctx, sql, args)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Budget{}, ErrNotFound
	}
	return stored, err
}

func (r *BudgetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("budgets").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BudgetRepository) scanOne(ctx context.Context, sql string, args []interface{}) (models.Budget, error) {
	var b models.Budget
	err := r.db.QueryRow(ctx, sql, args...).Scan(
		&b.ID, &b.UserID, &b.Category, &b.Amount, &b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}
