package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore 本地磁盘存储
// 文件写入 <root>/<kind>s/<uuid>-<name>，通过 <publicPrefix>/<kind>s/<uuid>-<name> 对外提供
type LocalStore struct {
	root         string
	publicPrefix string
}

// NewLocalStore 创建本地存储，并确保各类型目录存在
func NewLocalStore(root, publicPrefix string) (*LocalStore, error) {
	for _, k := range []Kind{KindPhoto, KindVideo} {
		if err := os.MkdirAll(filepath.Join(root, k.Dir()), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &LocalStore{
		root:         root,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
	}, nil
}

// Backend 实现 Store
func (s *LocalStore) Backend() Backend {
	return BackendLocal
}

// Root 上传根目录
func (s *LocalStore) Root() string {
	return s.root
}

// Put 写入文件，失败时清理半成品
func (s *LocalStore) Put(ctx context.Context, up Upload) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	name := objectName(up.Filename)
	locator := path.Join(up.Kind.Dir(), name)
	full := filepath.Join(s.root, filepath.FromSlash(locator))

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Object{}, fmt.Errorf("create %s: %w", locator, err)
	}

	n, err := io.Copy(f, up.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return Object{}, fmt.Errorf("write %s: %w", locator, err)
	}

	return Object{
		Ref:        Ref{Backend: BackendLocal, Locator: locator},
		PublicPath: s.publicPrefix + "/" + locator,
		Filename:   name,
		Size:       n,
	}, nil
}

// Delete 删除文件，文件不存在视为成功
func (s *LocalStore) Delete(_ context.Context, locator string) error {
	full, err := s.resolve(locator)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", locator, err)
	}
	return nil
}

// resolve 将定位符解析为根目录下的绝对路径，拒绝越界路径
func (s *LocalStore) resolve(locator string) (string, error) {
	clean := path.Clean("/" + locator)
	if clean == "/" {
		return "", fmt.Errorf("invalid locator %q", locator)
	}
	full := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("locator %q escapes upload root", locator)
	}
	return full, nil
}
