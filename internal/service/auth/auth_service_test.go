package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/easterblog/config"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
)

func newTestService(t *testing.T, enabled bool) *authService {
	hash, err := HashPasskey("s3cret")
	require.NoError(t, err)
	svc := NewAuthService(config.AuthConfig{
		Enabled:     enabled,
		PasskeyHash: hash,
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
	})
	return svc.(*authService)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t, true)

	t.Run("正确口令签发可验证的令牌", func(t *testing.T) {
		tok, err := svc.Login("s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, tok.Token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, time.Minute)

		claims, err := svc.Verify(tok.Token)
		require.NoError(t, err)
		assert.Equal(t, Subject, claims.Subject)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("错误口令返回401", func(t *testing.T) {
		_, err := svc.Login("wrong")
		require.Error(t, err)
		appErr, ok := apperrors.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.HTTPStatus())
	})

	t.Run("空口令返回400", func(t *testing.T) {
		_, err := svc.Login("")
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("未启用时拒绝登录", func(t *testing.T) {
		disabled := newTestService(t, false)
		assert.False(t, disabled.Enabled())
		_, err := disabled.Login("s3cret")
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestVerify(t *testing.T) {
	svc := newTestService(t, true)

	t.Run("过期令牌无效", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		tok, err := svc.Login("s3cret")
		require.NoError(t, err)

		svc.now = time.Now
		_, err = svc.Verify(tok.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("其他密钥签名的令牌无效", func(t *testing.T) {
		other := NewAuthService(config.AuthConfig{
			Enabled:     true,
			PasskeyHash: string(svc.passkeyHash),
			JWTSecret:   "another-secret",
		})
		tok, err := other.Login("s3cret")
		require.NoError(t, err)

		_, err = svc.Verify(tok.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("拒绝非HS256算法", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   Subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("垃圾字符串无效", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
