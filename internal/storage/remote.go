package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/weiwangfds/easterblog/config"
)

// Provider 远程对象存储提供商
type Provider interface {
	// Name 提供商标识，例如 aliyun
	Name() string
	// Upload 上传对象，size 未知时为 -1
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete 删除对象
	Delete(ctx context.Context, key string) error
	// URL 对象的公开访问地址
	URL(key string) string
	// TestConnection 检查凭证和存储桶是否可用
	TestConnection(ctx context.Context) error
}

// RemoteStore 基于 Provider 的远程存储
type RemoteStore struct {
	provider Provider
	prefix   string
}

// NewRemoteStore 创建远程存储，prefix 为对象键前缀
func NewRemoteStore(provider Provider, prefix string) *RemoteStore {
	return &RemoteStore{
		provider: provider,
		prefix:   strings.Trim(prefix, "/"),
	}
}

// Backend 实现 Store
func (s *RemoteStore) Backend() Backend {
	return BackendRemote
}

// Provider 返回底层提供商
func (s *RemoteStore) Provider() Provider {
	return s.provider
}

// Put 上传对象
func (s *RemoteStore) Put(ctx context.Context, up Upload) (Object, error) {
	name := objectName(up.Filename)
	key := path.Join(s.prefix, up.Kind.Dir(), name)

	counter := &countingReader{r: up.Body}
	if err := s.provider.Upload(ctx, key, counter, up.Size, up.ContentType); err != nil {
		return Object{}, err
	}

	return Object{
		Ref:        Ref{Backend: BackendRemote, Locator: key},
		PublicPath: s.provider.URL(key),
		Filename:   name,
		Size:       counter.n,
	}, nil
}

// Delete 删除对象
func (s *RemoteStore) Delete(ctx context.Context, locator string) error {
	if locator == "" {
		return fmt.Errorf("empty object key")
	}
	return s.provider.Delete(ctx, locator)
}

// NewProvider 根据配置创建提供商
func NewProvider(cfg config.RemoteConfig) (Provider, error) {
	switch cfg.Provider {
	case "aliyun":
		return NewAliyunProvider(cfg)
	case "tencent":
		return NewTencentProvider(cfg)
	case "qiniu":
		return NewQiniuProvider(cfg)
	case "s3":
		return NewS3Provider(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %q", cfg.Provider)
	}
}

// joinURL 拼接基础地址和对象键
func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
