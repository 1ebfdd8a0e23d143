// Package metrics 定义 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "easterblog"

var (
	// HTTPRequests 按路由、方法、状态码统计请求数
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests processed, by route, method and status.",
	}, []string{"route", "method", "status"})

	// HTTPDuration 请求耗时
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// MediaUploads 成功写入存储的媒体文件
	MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Media files written to storage, by kind and backend.",
	}, []string{"kind", "backend"})

	// MediaUploadBytes 写入存储的字节数
	MediaUploadBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_upload_bytes_total",
		Help:      "Bytes written to storage, by kind and backend.",
	}, []string{"kind", "backend"})

	// StorageDeleteFailures 删除存储字节失败次数，失败不影响记录删除
	StorageDeleteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_delete_failures_total",
		Help:      "Best-effort byte deletions that failed, by backend.",
	}, []string{"backend"})

	// FeaturedChanges 精选视频变更次数
	FeaturedChanges = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "featured_video_changes_total",
		Help:      "Featured flag transitions applied.",
	})
)
