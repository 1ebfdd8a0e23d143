package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/weiwangfds/easterblog/config"
	"github.com/weiwangfds/easterblog/internal/database"
	"github.com/weiwangfds/easterblog/internal/logger"
	"github.com/weiwangfds/easterblog/internal/router"
	"github.com/weiwangfds/easterblog/internal/storage"
	"github.com/weiwangfds/easterblog/internal/tracing"
	"golang.org/x/net/http2"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		logger.Fatalf("初始化日志失败: %v", err)
	}

	// 链路追踪
	shutdownTracing, err := tracing.Init(context.Background(), cfg.Tracing)
	if err != nil {
		logger.Fatalf("初始化链路追踪失败: %v", err)
	}

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatalf("初始化数据库失败: %v", err)
	}

	// 初始化存储
	store, err := storage.NewFromConfig(cfg.Upload, cfg.Storage)
	if err != nil {
		logger.Fatalf("初始化存储失败: %v", err)
	}
	checkCtx, cancelCheck := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.CheckRemote(checkCtx); err != nil {
		logger.Warnf("远程存储连接检查失败: %v", err)
	}
	cancelCheck()

	// 初始化路由
	r := router.NewRouter(cfg, db, store)
	handler := tracing.Wrap(r.GetEngine(), cfg.Tracing)

	srv, err := newServer(cfg.Server, handler)
	if err != nil {
		logger.Fatalf("创建服务器失败: %v", err)
	}

	go func() {
		var err error
		if cfg.Server.EnableHTTPS {
			logger.Infof("HTTPS服务器启动在端口 %d (HTTP/2: %v)", cfg.Server.HTTPSPort, cfg.Server.EnableHTTP2)
			err = srv.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			logger.Infof("HTTP服务器启动在端口 %d", cfg.Server.Port)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务器...")

	// 优雅关闭服务器
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("服务器强制关闭: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warnf("关闭链路追踪失败: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("服务器已退出")
}

// newServer 按配置创建 HTTP 或 HTTPS 服务器
func newServer(cfg config.ServerConfig, handler http.Handler) (*http.Server, error) {
	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
	if !cfg.EnableHTTPS {
		return srv, nil
	}

	srv.Addr = ":" + strconv.Itoa(cfg.HTTPSPort)
	srv.TLSConfig = &tls.Config{
		MinVersion: tls.VersionTLS12,
		NextProtos: []string{"http/1.1"},
	}

	// 如果启用HTTP/2，配置HTTP/2支持
	if cfg.EnableHTTP2 {
		srv.TLSConfig.NextProtos = []string{"h2", "http/1.1"}
		if err := http2.ConfigureServer(srv, &http2.Server{}); err != nil {
			return nil, err
		}
	}
	return srv, nil
}
