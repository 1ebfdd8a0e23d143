// Package media 提供照片和视频的上传、查询、更新、删除
// 以及全表至多一个精选视频的维护
package media

import (
	"context"
	"strings"

	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/storage"
)

// Storage 媒体服务依赖的存储能力，由 *storage.Manager 实现
type Storage interface {
	Save(ctx context.Context, up storage.Upload) (storage.Object, error)
	Remove(ctx context.Context, ref storage.Ref)
}

// setText 字段非空指针时写入更新集合
func setText(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = strings.TrimSpace(*value)
	}
}

// requireTitle 标题如果提供则不能为空
func requireTitle(title *string) error {
	if title != nil && strings.TrimSpace(*title) == "" {
		return apperrors.Validation("Title cannot be empty")
	}
	return nil
}

func refOf(backend, locator string) storage.Ref {
	return storage.Ref{Backend: storage.Backend(backend), Locator: locator}
}

func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}

// defaultTitle 未提供标题时使用原始文件名
func defaultTitle(title, filename string) string {
	return orDefault(title, filename)
}
