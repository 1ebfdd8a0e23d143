package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/weiwangfds/easterblog/config"
)

// S3Provider S3 兼容存储（AWS S3、MinIO 等）
type S3Provider struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewS3Provider 创建S3提供商
func NewS3Provider(cfg config.RemoteConfig) (*S3Provider, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
	if endpoint == "" {
		return nil, fmt.Errorf("s3 requires storage.remote.endpoint")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, endpoint, cfg.Bucket)
	}

	return &S3Provider{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Name 实现 Provider
func (p *S3Provider) Name() string {
	return "s3"
}

// Upload 上传对象
func (p *S3Provider) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := p.client.PutObject(ctx, p.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload to s3: %w", err)
	}
	return nil
}

// Delete 删除对象
func (p *S3Provider) Delete(ctx context.Context, key string) error {
	if err := p.client.RemoveObject(ctx, p.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete from s3: %w", err)
	}
	return nil
}

// URL 对象公开地址
func (p *S3Provider) URL(key string) string {
	return joinURL(p.baseURL, key)
}

// TestConnection 检查存储桶是否存在
func (p *S3Provider) TestConnection(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("failed to test s3 connection: %w", err)
	}
	if !exists {
		return fmt.Errorf("s3 bucket %q does not exist", p.bucket)
	}
	return nil
}
