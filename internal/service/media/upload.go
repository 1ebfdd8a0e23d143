package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // 注册 GIF 解码器
	_ "image/jpeg" // 注册 JPEG 解码器
	_ "image/png"  // 注册 PNG 解码器
	"io"
	"path/filepath"
	"strings"

	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/storage"
	_ "golang.org/x/image/webp" // 注册 WebP 解码器
)

// FileInput 上传的文件
type FileInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Policy 上传校验规则
// 扩展名和声明的 Content-Type 必须同时满足
type Policy struct {
	Kind        storage.Kind
	Extensions  []string
	MimePrefix  string
	MaxSize     int64
	TypeMessage string
	MissingText string
}

// PhotoPolicy 照片上传规则
func PhotoPolicy(maxSize int64) Policy {
	return Policy{
		Kind:        storage.KindPhoto,
		Extensions:  []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		MimePrefix:  "image/",
		MaxSize:     maxSize,
		TypeMessage: "Invalid file type. Only JPEG, PNG, GIF and WebP images are allowed.",
		MissingText: "No photo file provided",
	}
}

// VideoPolicy 视频上传规则
func VideoPolicy(maxSize int64) Policy {
	return Policy{
		Kind:        storage.KindVideo,
		Extensions:  []string{".mp4"},
		MimePrefix:  "video/",
		MaxSize:     maxSize,
		TypeMessage: "Invalid file type. Only MP4 videos are allowed.",
		MissingText: "No video file provided",
	}
}

// Check 校验文件
func (p Policy) Check(f *FileInput) error {
	if f == nil || f.Body == nil {
		return apperrors.New(apperrors.ErrFileRequired, p.MissingText)
	}
	if f.Size == 0 {
		return apperrors.New(apperrors.ErrFileEmpty, "Uploaded file is empty")
	}
	if p.MaxSize > 0 && f.Size > p.MaxSize {
		return apperrors.New(apperrors.ErrFileSizeTooLarge, TooLargeMessage(p.MaxSize))
	}

	ext := strings.ToLower(filepath.Ext(f.Filename))
	allowed := false
	for _, e := range p.Extensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed || !strings.HasPrefix(strings.ToLower(f.ContentType), p.MimePrefix) {
		return apperrors.New(apperrors.ErrFileTypeNotAllowed, p.TypeMessage)
	}
	return nil
}

// TooLargeMessage 超出大小限制的提示
func TooLargeMessage(maxSize int64) string {
	return fmt.Sprintf("File too large. Maximum size is %dMB.", maxSize/(1<<20))
}

// limitedReader 上传时强制大小上限，Size 可能与实际字节数不符
type limitedReader struct {
	r      io.Reader
	remain int64
	max    int64
}

func newLimitedReader(r io.Reader, max int64) *limitedReader {
	return &limitedReader{r: r, remain: max + 1, max: max}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remain <= 0 {
		return 0, apperrors.New(apperrors.ErrFileSizeTooLarge, TooLargeMessage(l.max))
	}
	if int64(len(p)) > l.remain {
		p = p[:l.remain]
	}
	n, err := l.r.Read(p)
	l.remain -= int64(n)
	if l.remain <= 0 {
		return n, apperrors.New(apperrors.ErrFileSizeTooLarge, TooLargeMessage(l.max))
	}
	return n, err
}

// probeLimit 读取图片头部用于解析尺寸的最大字节数
const probeLimit = 1 << 20

// headCapture 保存流经数据的前 probeLimit 字节
type headCapture struct {
	buf bytes.Buffer
}

func (h *headCapture) Write(p []byte) (int, error) {
	if room := probeLimit - h.buf.Len(); room > 0 {
		if len(p) > room {
			h.buf.Write(p[:room])
		} else {
			h.buf.Write(p)
		}
	}
	return len(p), nil
}

// dimensions 解析图片尺寸
func (h *headCapture) dimensions() (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(h.buf.Bytes()))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
