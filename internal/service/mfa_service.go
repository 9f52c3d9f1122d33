package service

import (
	"context"
	"errors"
	"time"

	"ahorrapp/internal/dto"
	"ahorrapp/internal/models"
	"ahorrapp/internal/repository"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
)

const totpIssuer = "Ahorrapp"

type MFARepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.MFAFactor, error)
	Replace(ctx context.Context, f *models.MFAFactor) error
	UpdateStatus(ctx context.Context, userID uuid.UUID, status models.MFAFactorStatus) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// MFAService manages TOTP enrollment. Enrolling replaces any existing
// factor, mirroring the unenroll-then-enroll flow of the web client.
type MFAService struct {
	repo   MFARepo
	logger *zap.Logger
}

func NewMFAService(repo MFARepo, logger *zap.Logger) *MFAService {
	return &MFAService{
		repo:   repo,
		logger: logger,
	}
}

func (s *MFAService) Enroll(ctx context.Context, userID uuid.UUID, email string) (*dto.MFAEnrollResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrNoSession
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: email,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	factor := &models.MFAFactor{
		ID:        uuid.New(),
		UserID:    userID,
		Secret:    key.Secret(),
		Status:    models.MFAFactorUnverified,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Replace(ctx, factor); err != nil {
		s.logger.Error("Failed to store MFA factor", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	return &dto.MFAEnrollResponse{
		Secret:     key.Secret(),
		OTPAuthURL: key.URL(),
	}, nil
}

func (s *MFAService) Verify(ctx context.Context, userID uuid.UUID, code string) error {
	factor, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMFANotEnrolled
		}
		return err
	}

	if !totp.Validate(code, factor.Secret) {
		return ErrInvalidMFACode
	}

	return s.repo.UpdateStatus(ctx, userID, models.MFAFactorVerified)
}

func (s *MFAService) Unenroll(ctx context.Context, userID uuid.UUID) error {
	err := s.repo.DeleteByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMFANotEnrolled
	}
	return err
}

func (s *MFAService) Status(ctx context.Context, userID uuid.UUID) (*dto.MFAStatusResponse, error) {
	factor, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &dto.MFAStatusResponse{Enrolled: false}, nil
		}
		return nil, err
	}

	return &dto.MFAStatusResponse{
		Enrolled: true,
		Status:   string(factor.Status),
	}, nil
}
