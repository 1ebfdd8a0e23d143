// Package auth 管理员口令校验与令牌签发
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/weiwangfds/easterblog/config"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// Subject 管理员令牌的主题
const Subject = "admin"

// ErrInvalidToken 令牌无效或已过期
var ErrInvalidToken = errors.New("invalid token")

// Token 登录结果
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService 管理员鉴权服务接口
type AuthService interface {
	// Enabled 未启用时所有接口都不需要令牌
	Enabled() bool
	Login(passkey string) (*Token, error)
	Verify(token string) (*jwt.RegisteredClaims, error)
}

type authService struct {
	enabled     bool
	passkeyHash []byte
	secret      []byte
	ttl         time.Duration
	now         func() time.Time
}

// NewAuthService 根据配置创建鉴权服务
func NewAuthService(cfg config.AuthConfig) AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &authService{
		enabled:     cfg.Enabled,
		passkeyHash: []byte(strings.TrimSpace(cfg.PasskeyHash)),
		secret:      []byte(cfg.JWTSecret),
		ttl:         ttl,
		now:         time.Now,
	}
}

// HashPasskey 生成口令的 bcrypt 哈希，用于写入 auth.passkey_hash
func HashPasskey(passkey string) (string, error) {
	if passkey == "" {
		return "", fmt.Errorf("passkey is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passkey), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash passkey: %w", err)
	}
	return string(hash), nil
}

func (s *authService) Enabled() bool {
	return s.enabled
}

func (s *authService) Login(passkey string) (*Token, error) {
	if !s.enabled {
		return nil, apperrors.Validation("Admin authentication is disabled")
	}
	if passkey == "" {
		return nil, apperrors.Validation("Passkey is required")
	}
	if err := bcrypt.CompareHashAndPassword(s.passkeyHash, []byte(passkey)); err != nil {
		return nil, apperrors.Unauthorized("Invalid passkey")
	}

	now := s.now().UTC()
	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   Subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Second)),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}
	return &Token{Token: signed, ExpiresAt: expires}, nil
}

func (s *authService) Verify(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithSubject(Subject),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
