package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *TokenService {
	return NewTokenService("test-secret-at-least-32-characters!!", time.Hour, "shopfront-backend")
}

func TestSessionTokens(t *testing.T) {
	svc := newTestService()

	t.Run("issue and validate", func(t *testing.T) {
		token, expiresAt, err := svc.IssueSession("admin")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := svc.ValidateSession(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, TokenTypeSession, claims.TokenType)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateSession("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("another-secret-also-32-characters!!!", time.Hour, "shopfront-backend")
		token, _, err := other.IssueSession("admin")
		require.NoError(t, err)

		_, err = svc.ValidateSession(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired session", func(t *testing.T) {
		expired := NewTokenService("test-secret-at-least-32-characters!!", -time.Minute, "shopfront-backend")
		token, _, err := expired.IssueSession("admin")
		require.NoError(t, err)

		_, err = svc.ValidateSession(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("download token rejected as session", func(t *testing.T) {
		token, err := svc.IssueDownloadToken([]int{1}, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateSession(token)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}

func TestDownloadTokens(t *testing.T) {
	svc := newTestService()

	t.Run("issue and validate", func(t *testing.T) {
		token, err := svc.IssueDownloadToken([]int{1, 4, 9}, time.Hour)
		require.NoError(t, err)

		ids, err := svc.ValidateDownloadToken(token)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 4, 9}, ids)
	})

	t.Run("expired download token", func(t *testing.T) {
		token, err := svc.IssueDownloadToken([]int{1}, -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateDownloadToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("session token rejected as download", func(t *testing.T) {
		token, _, err := svc.IssueSession("admin")
		require.NoError(t, err)

		_, err = svc.ValidateDownloadToken(token)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}
