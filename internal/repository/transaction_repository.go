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

var transactionColumns = []string{
	"id", "user_id", "description", "amount", "type", "category", "date", "created_at", "updated_at",
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at ASC").
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

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Description, &tx.Amount, &tx.Type, &tx.Category, &tx.Date, &tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// Create inserts the row and returns it as stored.
func (r *TransactionRepository) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	query := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(tx.ID, tx.UserID, tx.Description, tx.Amount, tx.Type, tx.Category, tx.Date, tx.CreatedAt, tx.UpdatedAt).
		Suffix("RETURNING " + returningTransactionColumns()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return models.Transaction{}, err
	}

	return r.scanOne(ctx, sql, args)
}

// Update rewrites the row by id, scoped to its owner, and returns the
// stored row. ErrNotFound when the id does not exist for that user.
func (r *TransactionRepository) Update(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	query := squirrel.Update("transactions").
		Set("description", tx.Description).
		Set("amount", tx.Amount).
		Set("type", tx.Type).
		Set("category", tx.Category).
		Set("date", tx.Date).
		Set("updated_at", tx.UpdatedAt).
		Where(squirrel.Eq{"id": tx.ID, "user_id": tx.UserID}).
		Suffix("RETURNING " + returningTransactionColumns()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return models.Transaction{}, err
	}

	stored, err := r.scanOne(ctx, sql, args)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Transaction{}, ErrNotFound
	}
	return stored, err
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("transactions").
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

func (r *TransactionRepository) scanOne(ctx context.Context, sql string, args []interface{}) (models.Transaction, error) {
	var tx models.Transaction
	err := r.db.QueryRow(ctx, sql, args...).Scan(
		&tx.ID, &tx.UserID, &tx.Description, &tx.Amount, &tx.Type, &tx.Category, &tx.Date, &tx.CreatedAt, &tx.UpdatedAt,
	)
	return tx, err
}

func returningTransactionColumns() string {
	return strings.Join(transactionColumns, ", ")
}
