package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token scopes. The auth middleware only accepts access tokens; the
// narrower scopes are consumed by dedicated auth endpoints.
const (
	ScopeAccess        = "access"
	ScopeRefresh       = "refresh"
	ScopeMFATicket     = "mfa_ticket"
	ScopePasswordReset = "password_reset"
)

const (
	mfaTicketDuration     = 5 * time.Minute
	passwordResetDuration = 15 * time.Minute
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Scope    string `json:"scope"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secretKey     string
	tokenDuration time.Duration
	refreshExp    time.Duration
}

func NewJWTManager(secretKey string, tokenDuration, refreshExp time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     secretKey,
		tokenDuration: tokenDuration,
		refreshExp:    refreshExp,
	}
}

func (m *JWTManager) GenerateToken(userID, username, email string) (string, error) {
	return m.sign(&Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		Scope:    ScopeAccess,
	}, m.tokenDuration)
}

func (m *JWTManager) GenerateRefreshToken(userID string) (string, error) {
	return m.sign(&Claims{UserID: userID, Scope: ScopeRefresh}, m.refreshExp)
}

// GenerateMFATicket issues the short-lived token returned by a password
// login when a verified TOTP factor exists. It grants nothing but the
// right to complete the login with a TOTP code.
func (m *JWTManager) GenerateMFATicket(userID string) (string, error) {
	return m.sign(&Claims{UserID: userID, Scope: ScopeMFATicket}, mfaTicketDuration)
}

// GeneratePasswordResetToken issues a one-time-use style reset token.
// Statelessness is a deliberate trade-off: the token stays valid until
// expiry even after use.
func (m *JWTManager) GeneratePasswordResetToken(userID string) (string, error) {
	return m.sign(&Claims{UserID: userID, Scope: ScopePasswordReset}, passwordResetDuration)
}

// ValidateToken parses the token and checks it carries the expected scope.
func (m *JWTManager) ValidateToken(tokenStr, scope string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Scope != scope {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (m *JWTManager) GetTokenDuration() time.Duration {
	return m.tokenDuration
}

func (m *JWTManager) sign(claims *Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}
