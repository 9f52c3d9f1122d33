package service

import (
	"context"
	"testing"
	"time"

	"ahorrapp/internal/dto"
	"ahorrapp/internal/models"
	"ahorrapp/pkg/auth"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture() (*fakeUserRepo, *fakeMFARepo, *AuthService) {
	userRepo := newFakeUserRepo()
	mfaRepo := newFakeMFARepo()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return userRepo, mfaRepo, NewAuthService(userRepo, mfaRepo, jwtManager, zap.NewNop())
}

func register(t *testing.T, svc *AuthService) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "s3creto",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	_, _, svc := newAuthFixture()

	resp := register(t, svc)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "maria", resp.User.Username)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "maria@example.com", Password: "s3creto",
	})
	require.NoError(t, err)
	require.False(t, login.MFARequired)
	require.NotNil(t, login.Auth)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	_, _, svc := newAuthFixture()
	register(t, svc)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "otra", Email: "maria@example.com", Password: "x",
	})
	require.ErrorIs(t, err, ErrUserExists)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	_, _, svc := newAuthFixture()
	register(t, svc)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "maria@example.com", Password: "wrong",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	_, _, svc := newAuthFixture()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@example.com", Password: "x",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshToken(t *testing.T) {
	_, _, svc := newAuthFixture()
	resp := register(t, svc)

	refreshed, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), resp.AccessToken)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginWithVerifiedFactorRequiresMFA(t *testing.T) {
	userRepo, mfaRepo, svc := newAuthFixture()
	register(t, svc)

	var userID uuid.UUID
	for id := range userRepo.byID {
		userID = id
	}

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "Ahorrapp", AccountName: "maria@example.com"})
	require.NoError(t, err)
	mfaRepo.factors[userID] = &models.MFAFactor{
		ID: uuid.New(), UserID: userID, Secret: key.Secret(), Status: models.MFAFactorVerified,
	}

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "maria@example.com", Password: "s3creto",
	})
	require.NoError(t, err)
	require.True(t, login.MFARequired)
	require.NotEmpty(t, login.MFATicket)
	require.Nil(t, login.Auth)

	code, err := totp.GenerateCode(key.Secret(), time.Now())
	require.NoError(t, err)

	completed, err := svc.VerifyMFALogin(context.Background(), &dto.MFALoginRequest{
		Ticket: login.MFATicket, Code: code,
	})
	require.NoError(t, err)
	require.NotEmpty(t, completed.AccessToken)
}

func TestAuthService_VerifyMFALoginRejectsBadCode(t *testing.T) {
	userRepo, mfaRepo, svc := newAuthFixture()
	register(t, svc)

	var userID uuid.UUID
	for id := range userRepo.byID {
		userID = id
	}

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "Ahorrapp", AccountName: "maria@example.com"})
	require.NoError(t, err)
	mfaRepo.factors[userID] = &models.MFAFactor{
		ID: uuid.New(), UserID: userID, Secret: key.Secret(), Status: models.MFAFactorVerified,
	}

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "maria@example.com", Password: "s3creto",
	})
	require.NoError(t, err)

	_, err = svc.VerifyMFALogin(context.Background(), &dto.MFALoginRequest{
		Ticket: login.MFATicket, Code: "000000",
	})
	require.ErrorIs(t, err, ErrInvalidMFACode)
}

func TestAuthService_PasswordReset(t *testing.T) {
	_, _, svc := newAuthFixture()
	register(t, svc)

	token, err := svc.RequestPasswordReset(context.Background(), "maria@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	err = svc.ConfirmPasswordReset(context.Background(), &dto.PasswordResetConfirmRequest{
		Token: token, NewPassword: "nuevo-secreto",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email: "maria@example.com", Password: "s3creto",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "maria@example.com", Password: "nuevo-secreto",
	})
	require.NoError(t, err)
	require.NotNil(t, login.Auth)
}

func TestAuthService_PasswordResetUnknownEmail(t *testing.T) {
	_, _, svc := newAuthFixture()

	_, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_PasswordResetRejectsAccessToken(t *testing.T) {
	_, _, svc := newAuthFixture()
	resp := register(t, svc)

	err := svc.ConfirmPasswordReset(context.Background(), &dto.PasswordResetConfirmRequest{
		Token: resp.AccessToken, NewPassword: "nuevo",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMFAService_EnrollVerifyUnenroll(t *testing.T) {
	mfaRepo := newFakeMFARepo()
	svc := NewMFAService(mfaRepo, zap.NewNop())
	userID := uuid.New()

	enrolled, err := svc.Enroll(context.Background(), userID, "maria@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, enrolled.Secret)
	require.Contains(t, enrolled.OTPAuthURL, "otpauth://totp/")

	status, err := svc.Status(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, status.Enrolled)
	require.Equal(t, string(models.MFAFactorUnverified), status.Status)

	code, err := totp.GenerateCode(enrolled.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.Verify(context.Background(), userID, code))

	status, err = svc.Status(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, string(models.MFAFactorVerified), status.Status)

	require.NoError(t, svc.Unenroll(context.Background(), userID))

	status, err = svc.Status(context.Background(), userID)
	require.NoError(t, err)
	require.False(t, status.Enrolled)
}

func TestMFAService_EnrollReplacesExistingFactor(t *testing.T) {
	mfaRepo := newFakeMFARepo()
	svc := NewMFAService(mfaRepo, zap.NewNop())
	userID := uuid.New()

	first, err := svc.Enroll(context.Background(), userID, "maria@example.com")
	require.NoError(t, err)

	second, err := svc.Enroll(context.Background(), userID, "maria@example.com")
	require.NoError(t, err)
	require.NotEqual(t, first.Secret, second.Secret)

	require.Len(t, mfaRepo.factors, 1)
	require.Equal(t, second.Secret, mfaRepo.factors[userID].Secret)
}

func TestMFAService_VerifyWithoutEnrollment(t *testing.T) {
	svc := NewMFAService(newFakeMFARepo(), zap.NewNop())
	err := svc.Verify(context.Background(), uuid.New(), "123456")
	require.ErrorIs(t, err, ErrMFANotEnrolled)
}
