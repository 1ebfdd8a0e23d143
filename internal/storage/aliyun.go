package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/weiwangfds/easterblog/config"
)

// AliyunProvider 阿里云OSS
type AliyunProvider struct {
	client  *oss.Client
	bucket  *oss.Bucket
	name    string
	baseURL string
}

// NewAliyunProvider 创建阿里云OSS提供商
func NewAliyunProvider(cfg config.RemoteConfig) (*AliyunProvider, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://oss-%s.aliyuncs.com", cfg.Region)
	}

	client, err := oss.New(endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create aliyun oss client: %w", err)
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %s: %w", cfg.Bucket, err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		// 虚拟主机风格: https://<bucket>.<endpoint host>
		u, err := url.Parse(endpoint)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid aliyun endpoint %q", endpoint)
		}
		baseURL = fmt.Sprintf("%s://%s.%s", u.Scheme, cfg.Bucket, u.Host)
	}

	return &AliyunProvider{
		client:  client,
		bucket:  bucket,
		name:    cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Name 实现 Provider
func (p *AliyunProvider) Name() string {
	return "aliyun"
}

// Upload 上传对象
func (p *AliyunProvider) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	options := []oss.Option{oss.WithContext(ctx)}
	if contentType != "" {
		options = append(options, oss.ContentType(contentType))
	}
	if size >= 0 {
		options = append(options, oss.ContentLength(size))
	}

	if err := p.bucket.PutObject(key, r, options...); err != nil {
		return fmt.Errorf("failed to upload to aliyun oss: %w", err)
	}
	return nil
}

// Delete 删除对象
func (p *AliyunProvider) Delete(ctx context.Context, key string) error {
	if err := p.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete from aliyun oss: %w", err)
	}
	return nil
}

// URL 对象公开地址
func (p *AliyunProvider) URL(key string) string {
	return joinURL(p.baseURL, key)
}

// TestConnection 获取存储桶信息
func (p *AliyunProvider) TestConnection(_ context.Context) error {
	if _, err := p.client.GetBucketInfo(p.name); err != nil {
		return fmt.Errorf("failed to test aliyun oss connection: %w", err)
	}
	return nil
}
