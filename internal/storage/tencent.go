package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tencentyun/cos-go-sdk-v5"
	"github.com/weiwangfds/easterblog/config"
)

// TencentProvider 腾讯云COS
type TencentProvider struct {
	client  *cos.Client
	baseURL string
}

// NewTencentProvider 创建腾讯云COS提供商
func NewTencentProvider(cfg config.RemoteConfig) (*TencentProvider, error) {
	bucketURL := fmt.Sprintf("https://%s.cos.%s.myqcloud.com", cfg.Bucket, cfg.Region)
	if cfg.Endpoint != "" {
		bucketURL = cfg.Endpoint
	}

	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bucket URL: %w", err)
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		},
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = bucketURL
	}

	return &TencentProvider{
		client:  client,
		baseURL: baseURL,
	}, nil
}

// Name 实现 Provider
func (p *TencentProvider) Name() string {
	return "tencent"
}

// Upload 上传对象
func (p *TencentProvider) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	header := &cos.ObjectPutHeaderOptions{ContentType: contentType}
	if size >= 0 {
		header.ContentLength = size
	}
	opt := &cos.ObjectPutOptions{ObjectPutHeaderOptions: header}

	if _, err := p.client.Object.Put(ctx, key, r, opt); err != nil {
		return fmt.Errorf("failed to upload to tencent cos: %w", err)
	}
	return nil
}

// Delete 删除对象
func (p *TencentProvider) Delete(ctx context.Context, key string) error {
	if _, err := p.client.Object.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete from tencent cos: %w", err)
	}
	return nil
}

// URL 对象公开地址
func (p *TencentProvider) URL(key string) string {
	return joinURL(p.baseURL, key)
}

// TestConnection 检查存储桶
func (p *TencentProvider) TestConnection(ctx context.Context) error {
	if _, err := p.client.Bucket.Head(ctx); err != nil {
		return fmt.Errorf("failed to test tencent cos connection: %w", err)
	}
	return nil
}
