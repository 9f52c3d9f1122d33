package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateToken("user-1", "maria", "maria@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token, ScopeAccess)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "maria", claims.Username)
	require.Equal(t, "maria@example.com", claims.Email)
}

func TestJWTManager_ScopeMismatch(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.ValidateToken(refresh, ScopeAccess)
	require.Error(t, err)

	claims, err := m.ValidateToken(refresh, ScopeRefresh)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
}

func TestJWTManager_WrongKey(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateToken("user-1", "maria", "maria@example.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(token, ScopeAccess)
	require.Error(t, err)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateToken("user-1", "maria", "maria@example.com")
	require.NoError(t, err)

	_, err = m.ValidateToken(token, ScopeAccess)
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3creto")
	require.NoError(t, err)
	require.NotEqual(t, "s3creto", hash)

	require.True(t, CheckPasswordHash("s3creto", hash))
	require.False(t, CheckPasswordHash("wrong", hash))
}
