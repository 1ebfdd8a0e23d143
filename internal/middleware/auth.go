package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/logger"
	"github.com/weiwangfds/easterblog/internal/response"
	"github.com/weiwangfds/easterblog/internal/service/auth"
)

// AdminClaimsKey gin上下文中管理员令牌声明的键
const AdminClaimsKey = "admin_claims"

// RequireAdmin 校验 Authorization: Bearer <token>
// 鉴权未启用时直接放行
func RequireAdmin(authService auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authService.Enabled() {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, apperrors.Unauthorized("Authentication required"))
			return
		}

		claims, err := authService.Verify(token)
		if err != nil {
			logger.WithField("request_id", c.GetString(response.RequestIDKey)).
				Warn("管理员令牌校验失败")
			response.Abort(c, apperrors.Unauthorized("Invalid or expired token"))
			return
		}

		c.Set(AdminClaimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
