package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

func TestManager(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	t.Run("生成并解析Access Token", func(t *testing.T) {
		pair, err := m.GenerateToken(7, "alice", "Alice")
		require.NoError(t, err)
		assert.Equal(t, int64(7200), pair.ExpiresIn)

		claims, err := m.ParseAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "alice", claims.Account)
		assert.Equal(t, "Alice", claims.Username)
		assert.Equal(t, "dcare", claims.Issuer)
		assert.InDelta(t, (2 * time.Hour).Seconds(), m.RemainingTTL(claims).Seconds(), 5)
	})

	t.Run("Refresh Token不能当Access Token使用", func(t *testing.T) {
		pair, err := m.GenerateToken(7, "alice", "Alice")
		require.NoError(t, err)

		_, err = m.ParseAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

		_, err = m.RefreshAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("刷新Access Token", func(t *testing.T) {
		pair, err := m.GenerateToken(7, "alice", "Alice")
		require.NoError(t, err)

		access, err := m.RefreshAccessToken(pair.RefreshToken)
		require.NoError(t, err)
		claims, err := m.ParseAccessToken(access)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Account)
	})

	t.Run("过期Token", func(t *testing.T) {
		past := NewManager("test-secret", time.Minute, time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
		pair, err := past.GenerateToken(7, "alice", "Alice")
		require.NoError(t, err)

		_, err = m.ParseAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("签名密钥不一致", func(t *testing.T) {
		other := NewManager("other-secret", time.Hour, time.Hour)
		pair, err := other.GenerateToken(7, "alice", "Alice")
		require.NoError(t, err)

		_, err = m.ParseAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
