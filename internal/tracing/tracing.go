// Package tracing 配置 OpenTelemetry 链路追踪
package tracing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/weiwangfds/easterblog/config"
	"github.com/weiwangfds/easterblog/internal/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// ShutdownFunc 刷新并关闭追踪导出
type ShutdownFunc func(context.Context) error

// Init 按配置初始化全局 TracerProvider
// Endpoint 为空时不启用，返回空操作的 ShutdownFunc
func Init(ctx context.Context, cfg config.TracingConfig) (ShutdownFunc, error) {
	if cfg.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otel exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName(serviceName(cfg)),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp), sdktrace.WithResource(res))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	logger.Infof("链路追踪已启用: endpoint=%s, service=%s", cfg.Endpoint, serviceName(cfg))
	return tp.Shutdown, nil
}

// Wrap 为处理器加上追踪，未启用时原样返回
func Wrap(h http.Handler, cfg config.TracingConfig) http.Handler {
	if cfg.Endpoint == "" {
		return h
	}
	return otelhttp.NewHandler(h, serviceName(cfg))
}

func serviceName(cfg config.TracingConfig) string {
	if cfg.ServiceName != "" {
		return cfg.ServiceName
	}
	return "easterblog"
}
