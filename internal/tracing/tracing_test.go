package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/easterblog/config"
)

func TestInit(t *testing.T) {
	t.Run("未配置端点时不启用", func(t *testing.T) {
		shutdown, err := Init(context.Background(), config.TracingConfig{})
		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))

		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		wrapped := Wrap(h, config.TracingConfig{})
		_, isFunc := wrapped.(http.HandlerFunc)
		assert.True(t, isFunc)
	})

	t.Run("配置端点后包装处理器", func(t *testing.T) {
		cfg := config.TracingConfig{Endpoint: "127.0.0.1:4318", Insecure: true}
		shutdown, err := Init(context.Background(), cfg)
		require.NoError(t, err)

		called := false
		h := Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusNoContent)
		}), cfg)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.True(t, called)
		assert.Equal(t, http.StatusNoContent, w.Code)

		// 没有收集器时导出失败，只要求关闭不阻塞
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	})
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "easterblog", serviceName(config.TracingConfig{}))
	assert.Equal(t, "blog-api", serviceName(config.TracingConfig{ServiceName: "blog-api"}))
}
