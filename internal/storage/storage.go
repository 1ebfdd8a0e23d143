// Package storage 提供媒体字节的存储抽象
//
// 上传时写入配置的主后端（本地磁盘或远程对象存储），返回对外可访问的路径和
// 一个可判别的引用 Ref{Backend, Locator}。引用随记录一起保存，删除时按引用中
// 的后端分派，不再根据URL字符串推断。
package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Kind 媒体类型
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// Dir 返回该类型在存储中的目录名
func (k Kind) Dir() string {
	return string(k) + "s"
}

// Backend 存储后端
type Backend string

const (
	BackendLocal  Backend = "local"
	BackendRemote Backend = "remote"
)

// Ref 存储引用
// Locator 对本地后端是相对于上传根目录的路径，对远程后端是对象键
type Ref struct {
	Backend Backend `json:"backend"`
	Locator string  `json:"locator"`
}

// IsZero 引用是否为空
func (r Ref) IsZero() bool {
	return r.Locator == ""
}

// Upload 待写入的文件
type Upload struct {
	Kind        Kind
	Filename    string // 原始文件名
	ContentType string
	Size        int64 // 未知时为 -1
	Body        io.Reader
}

// Object 写入结果
type Object struct {
	Ref        Ref
	PublicPath string // 本地为 /uploads/... 路径，远程为完整URL
	Filename   string // 实际存储的文件名
	Size       int64
}

// Store 单个存储后端
type Store interface {
	Backend() Backend
	Put(ctx context.Context, up Upload) (Object, error)
	Delete(ctx context.Context, locator string) error
}

// objectName 生成带唯一前缀的文件名，避免重名覆盖
func objectName(original string) string {
	return uuid.NewString() + "-" + sanitizeName(original)
}

// sanitizeName 保留文件名中的字母、数字和 . - _，其余替换为下划线
func sanitizeName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "file"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
