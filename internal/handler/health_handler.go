package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/response"
	"gorm.io/gorm"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health 进程存活检查
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is running",
	})
}

// DBStatus 数据库连接检查
// @Router /api/db/status [get]
func (h *HealthHandler) DBStatus(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		response.Error(c, apperrors.Database("Database connection error", err))
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		response.Error(c, apperrors.Database("Database ping failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "Database connection OK",
	})
}
