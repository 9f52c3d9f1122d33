package repository

import (
	"context"
	"errors"

	"ahorrapp/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MFARepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMFARepository(db *pgxpool.Pool, logger *zap.Logger) *MFARepository {
	return &MFARepository{
		db:     db,
		logger: logger,
	}
}

func (r *MFARepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.MFAFactor, error) {
	query := squirrel.Select("id", "user_id", "secret", "status", "created_at", "updated_at").
		From("mfa_factors").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var f models.MFAFactor
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&f.ID, &f.UserID, &f.Secret, &f.Status, &f.CreatedAt, &f.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Replace installs the factor as the user's only one. Enrolling again
// overwrites any previous secret and resets the status.
func (r *MFARepository) Replace(ctx context.Context, f *models.MFAFactor) error {
	query := squirrel.Insert("mfa_factors").
		Columns("id", "user_id", "secret", "status", "created_at", "updated_at").
		Values(f.ID, f.UserID, f.Secret, f.Status, f.CreatedAt, f.UpdatedAt).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET id = EXCLUDED.id, secret = EXCLUDED.secret, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *MFARepository) UpdateStatus(ctx context.Context, userID uuid.UUID, status models.MFAFactorStatus) error {
	query := squirrel.Update("mfa_factors").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
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

func (r *MFARepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	query := squirrel.Delete("mfa_factors").
		Where(squirrel.Eq{"user_id": userID}).
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
