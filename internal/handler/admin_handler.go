package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/easterblog/internal/logger"
	"github.com/weiwangfds/easterblog/internal/response"
	"github.com/weiwangfds/easterblog/internal/service/auth"
)

// AdminHandler 管理员登录处理器
type AdminHandler struct {
	authService auth.AuthService
}

// LoginRequest 登录请求
type LoginRequest struct {
	Passkey string `json:"passkey"`
}

// NewAdminHandler 创建管理员处理器实例
func NewAdminHandler(authService auth.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// Login 用口令换取管理员令牌
// @Summary 管理员登录
// @Tags 管理
// @Accept json
// @Produce json
// @Param body body LoginRequest true "口令"
// @Success 200 {object} auth.Token
// @Failure 400 {object} response.ErrorBody "未启用鉴权或口令为空"
// @Failure 401 {object} response.ErrorBody "口令错误"
// @Router /api/admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.authService.Login(req.Passkey)
	if err != nil {
		logger.WithField("client_ip", c.ClientIP()).Warn("管理员登录失败")
		response.Error(c, err)
		return
	}
	response.OK(c, token)
}
