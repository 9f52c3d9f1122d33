package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ahorrapp/internal/dto"
	"ahorrapp/internal/models"
	"ahorrapp/internal/repository"
	"ahorrapp/pkg/auth"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
)

type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
}

type MFAFactorReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.MFAFactor, error)
}

type AuthService struct {
	userRepo   UserRepo
	mfaRepo    MFAFactorReader
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(userRepo UserRepo, mfaRepo MFAFactorReader, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		mfaRepo:    mfaRepo,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	existingUser, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Login checks the credentials. When the user carries a verified TOTP
// factor the response holds a short-lived MFA ticket instead of tokens;
// VerifyMFALogin completes the exchange.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	factor, err := s.mfaRepo.GetByUserID(ctx, user.ID)
	if err == nil && factor.Status == models.MFAFactorVerified {
		ticket, err := s.jwtManager.GenerateMFATicket(user.ID.String())
		if err != nil {
			return nil, err
		}
		return &dto.LoginResponse{MFARequired: true, MFATicket: ticket}, nil
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Auth: tokens}, nil
}

// VerifyMFALogin trades an MFA ticket plus a TOTP code for tokens.
func (s *AuthService) VerifyMFALogin(ctx context.Context, req *dto.MFALoginRequest) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(req.Ticket, auth.ScopeMFATicket)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	factor, err := s.mfaRepo.GetByUserID(ctx, userID)
	if err != nil || factor.Status != models.MFAFactorVerified {
		return nil, ErrInvalidCredentials
	}

	if !totp.Validate(req.Code, factor.Secret) {
		return nil, ErrInvalidMFACode
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return s.issueTokens(user)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken, auth.ScopeRefresh)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return s.issueTokens(user)
}

// RequestPasswordReset issues a short-lived reset token. Delivering it
// to the user is outside this service; the handler returns it directly.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", ErrUserNotFound
	}
	return s.jwtManager.GeneratePasswordResetToken(user.ID.String())
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, req *dto.PasswordResetConfirmRequest) error {
	if req.NewPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}

	claims, err := s.jwtManager.ValidateToken(req.Token, auth.ScopePasswordReset)
	if err != nil {
		return ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID.String(), user.Username, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User: dto.UserResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}
