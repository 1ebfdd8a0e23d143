// Package response 提供统一的JSON响应
// 成功时直接返回实体或 {message}，失败时返回 {error}
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/i18n"
	"github.com/weiwangfds/easterblog/internal/logger"
)

// RequestIDKey gin上下文中请求ID的键
const RequestIDKey = "request_id"

// ErrorBody 错误响应体
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody 消息响应体
type MessageBody struct {
	Message string `json:"message"`
}

// OK 返回200和数据
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 返回201和新建的数据
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 返回200和消息
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

// Error 将错误翻译为HTTP响应
// 非 AppError 一律按500处理，原始错误只写入日志
func Error(c *gin.Context, err error) {
	status, body := translate(c, err)
	c.JSON(status, body)
}

// Abort 与 Error 相同，但会中止后续处理器
func Abort(c *gin.Context, err error) {
	status, body := translate(c, err)
	c.AbortWithStatusJSON(status, body)
}

// BadRequest 返回400
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: message})
}

// NotFound 返回404
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorBody{Error: message})
}

func translate(c *gin.Context, err error) (int, ErrorBody) {
	lang := i18n.GetInstance().MatchLanguage(c.GetHeader("Accept-Language"))
	fields := logrus.Fields{
		"request_id": getRequestID(c),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}

	appErr, ok := apperrors.GetAppError(err)
	if !ok {
		logger.WithFields(fields).WithError(err).Error("未处理的错误")
		return http.StatusInternalServerError, ErrorBody{
			Error: apperrors.GetErrorMessageWithLang(apperrors.ErrInternalServer, lang),
		}
	}

	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.WithFields(fields).WithError(err).Error("请求处理失败")
	}
	message := appErr.Message
	if message == "" {
		message = apperrors.GetErrorMessageWithLang(appErr.Code, lang)
	}
	return status, ErrorBody{Error: message}
}

// getRequestID 获取请求ID
func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
