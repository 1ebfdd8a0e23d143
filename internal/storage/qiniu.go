package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/qiniu/go-sdk/v7/auth/qbox"
	qnstorage "github.com/qiniu/go-sdk/v7/storage"
	"github.com/weiwangfds/easterblog/config"
)

// QiniuProvider 七牛云Kodo
// 七牛没有固定的公开域名，PublicBaseURL 或 Endpoint 必须配置绑定的域名
type QiniuProvider struct {
	mac      *qbox.Mac
	bucket   string
	domain   string
	useHTTPS bool
	region   *qnstorage.Region
}

// NewQiniuProvider 创建七牛云Kodo提供商
func NewQiniuProvider(cfg config.RemoteConfig) (*QiniuProvider, error) {
	mac := qbox.NewMac(cfg.AccessKey, cfg.SecretKey)

	region, err := qnstorage.GetRegion(cfg.AccessKey, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to get qiniu region: %w", err)
	}

	domain := cfg.PublicBaseURL
	if domain == "" {
		domain = cfg.Endpoint
	}
	if domain == "" {
		return nil, fmt.Errorf("qiniu requires storage.remote.public_base_url")
	}

	return &QiniuProvider{
		mac:      mac,
		bucket:   cfg.Bucket,
		domain:   domain,
		useHTTPS: cfg.UseSSL,
		region:   region,
	}, nil
}

// Name 实现 Provider
func (p *QiniuProvider) Name() string {
	return "qiniu"
}

func (p *QiniuProvider) bucketManager() *qnstorage.BucketManager {
	return qnstorage.NewBucketManager(p.mac, &qnstorage.Config{
		Region:   p.region,
		UseHTTPS: p.useHTTPS,
	})
}

// Upload 表单上传
func (p *QiniuProvider) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	putPolicy := qnstorage.PutPolicy{
		Scope: fmt.Sprintf("%s:%s", p.bucket, key),
	}
	upToken := putPolicy.UploadToken(p.mac)

	uploader := qnstorage.NewFormUploader(&qnstorage.Config{
		Region:   p.region,
		UseHTTPS: p.useHTTPS,
	})
	ret := qnstorage.PutRet{}
	extra := qnstorage.PutExtra{MimeType: contentType}

	if err := uploader.Put(ctx, &ret, upToken, key, r, size, &extra); err != nil {
		return fmt.Errorf("failed to upload to qiniu kodo: %w", err)
	}
	return nil
}

// Delete 删除对象
func (p *QiniuProvider) Delete(_ context.Context, key string) error {
	if err := p.bucketManager().Delete(p.bucket, key); err != nil {
		return fmt.Errorf("failed to delete from qiniu kodo: %w", err)
	}
	return nil
}

// URL 对象公开地址
func (p *QiniuProvider) URL(key string) string {
	return qnstorage.MakePublicURLv2(p.domain, key)
}

// TestConnection 列出一个对象
func (p *QiniuProvider) TestConnection(_ context.Context) error {
	if _, _, _, _, err := p.bucketManager().ListFiles(p.bucket, "", "", "", 1); err != nil {
		return fmt.Errorf("failed to test qiniu kodo connection: %w", err)
	}
	return nil
}
