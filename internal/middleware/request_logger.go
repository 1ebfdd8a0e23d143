package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/weiwangfds/easterblog/internal/logger"
	"github.com/weiwangfds/easterblog/internal/response"
)

// RequestIDHeader 请求ID的请求头/响应头
const RequestIDHeader = "X-Request-ID"

// RequestLoggerConfig 请求日志中间件配置
type RequestLoggerConfig struct {
	SkipPaths []string // 跳过记录的路径
}

// DefaultRequestLoggerConfig 默认配置
func DefaultRequestLoggerConfig() *RequestLoggerConfig {
	return &RequestLoggerConfig{
		SkipPaths: []string{"/health", "/metrics", "/favicon.ico"},
	}
}

// RequestID 为每个请求分配ID，客户端传入的ID会被沿用
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger 请求日志中间件
// 按状态码选择日志级别：5xx 为 error，4xx 为 warn，其余为 info
func RequestLogger(config ...*RequestLoggerConfig) gin.HandlerFunc {
	cfg := DefaultRequestLoggerConfig()
	if len(config) > 0 && config[0] != nil {
		cfg = config[0]
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// 处理请求
		c.Next()

		if _, ok := skip[path]; ok {
			return
		}

		latency := time.Since(start)
		status := c.Writer.Status()
		fields := logrus.Fields{
			"status":     status,
			"latency":    latency,
			"latency_ms": latency.Milliseconds(),
			"client_ip":  c.ClientIP(),
			"method":     c.Request.Method,
			"path":       path,
			"request_id": c.GetString(response.RequestIDKey),
			"size":       c.Writer.Size(),
		}
		if raw != "" {
			fields["raw_query"] = raw
		}
		if len(c.Errors) > 0 {
			fields["error"] = c.Errors.String()
		}

		entry := logger.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("HTTP Request")
		case status >= 400:
			entry.Warn("HTTP Request")
		default:
			entry.Info("HTTP Request")
		}
	}
}
