package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/easterblog/internal/metrics"
)

// unmatchedRoute 未匹配路由的标签，避免任意路径撑爆标签基数
const unmatchedRoute = "unmatched"

// Metrics 记录请求数和耗时，按路由模板分组
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
