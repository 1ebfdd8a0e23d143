// Package handler 提供HTTP处理器
// 处理器只做参数解析和响应翻译，业务规则在 service 包中
package handler

import (
	stderrors "errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/service/listing"
	"github.com/weiwangfds/easterblog/internal/service/media"
)

// parseID 解析路径参数 id
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("Invalid id")
	}
	return uint(id), nil
}

// listParams 从查询字符串读取 category、status、limit、offset
func listParams(c *gin.Context) listing.Params {
	return listing.Parse(c.Query("category"), c.Query("status"), c.Query("limit"), c.Query("offset"))
}

// bindJSON 解析请求体，空请求体视为空对象
func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil && !stderrors.Is(err, io.EOF) {
		return apperrors.Wrap(apperrors.ErrInvalidParams, "Invalid request body", err)
	}
	return nil
}

// formFile 读取 multipart 中的文件字段
// 字段缺失时返回 nil，交给上传规则报告缺少文件
// 调用方负责关闭返回的 closer
func formFile(c *gin.Context, field string, maxSize int64) (*media.FileInput, io.Closer, error) {
	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			return nil, nil, apperrors.New(apperrors.ErrFileSizeTooLarge, media.TooLargeMessage(maxSize))
		case stderrors.Is(err, http.ErrMissingFile), stderrors.Is(err, http.ErrNotMultipart):
			return nil, nil, nil
		default:
			return nil, nil, apperrors.Wrap(apperrors.ErrInvalidParams, "Invalid multipart form", err)
		}
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInvalidParams, "Unable to read uploaded file", err)
	}
	return fileInput(header, file), file, nil
}

func fileInput(header *multipart.FileHeader, body io.Reader) *media.FileInput {
	return &media.FileInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        body,
	}
}

// closeQuietly 关闭上传的临时文件
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// CounterResponse 计数接口的响应
type CounterResponse struct {
	ID    uint  `json:"id"`
	Views int64 `json:"views,omitempty"`
	Likes int64 `json:"likes,omitempty"`
}
