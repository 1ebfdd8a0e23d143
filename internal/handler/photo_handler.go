package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/easterblog/internal/response"
	"github.com/weiwangfds/easterblog/internal/service/media"
)

// PhotoHandler 照片处理器
type PhotoHandler struct {
	photoService media.PhotoService
	maxSize      int64
}

// NewPhotoHandler 创建照片处理器实例
func NewPhotoHandler(photoService media.PhotoService, maxSize int64) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		maxSize:      maxSize,
	}
}

// ListPhotos 获取照片列表
// @Summary 获取照片列表
// @Tags 照片
// @Produce json
// @Param category query string false "分类，all 表示全部"
// @Param limit query int false "每页条数" default(50)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} database.Photo
// @Router /api/photos [get]
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	photos, err := h.photoService.ListPhotos(c.Request.Context(), listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, photos)
}

// GetPhoto 获取照片详情
// @Summary 获取照片详情
// @Tags 照片
// @Produce json
// @Param id path int true "照片ID"
// @Success 200 {object} database.Photo
// @Failure 404 {object} response.ErrorBody "照片不存在"
// @Router /api/photos/{id} [get]
func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	photo, err := h.photoService.GetPhoto(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, photo)
}

// UploadPhoto 上传照片
// @Summary 上传照片
// @Tags 照片
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "图片文件"
// @Param title formData string false "标题，默认为文件名"
// @Param description formData string false "描述"
// @Param category formData string false "分类"
// @Param tags formData string false "标签"
// @Success 201 {object} database.Photo
// @Failure 400 {object} response.ErrorBody "文件缺失、类型不允许或超出大小"
// @Router /api/photos [post]
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	file, closer, err := formFile(c, "photo", h.maxSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeQuietly(closer)

	photo, err := h.photoService.CreatePhoto(c.Request.Context(), &media.CreatePhotoRequest{
		File:        file,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Tags:        c.PostForm("tags"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, photo)
}

// UpdatePhoto 部分更新照片
// @Summary 更新照片信息
// @Description 只更新请求中出现的字段
// @Tags 照片
// @Accept json
// @Produce json
// @Param id path int true "照片ID"
// @Param photo body media.UpdatePhotoRequest true "更新内容"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody "照片不存在"
// @Router /api/photos/{id} [put]
func (h *PhotoHandler) UpdatePhoto(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req media.UpdatePhotoRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.photoService.UpdatePhoto(c.Request.Context(), id, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Photo updated successfully")
}

// DeletePhoto 删除照片
// @Summary 删除照片
// @Tags 照片
// @Produce json
// @Param id path int true "照片ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody "照片不存在"
// @Router /api/photos/{id} [delete]
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Photo deleted successfully")
}

// LikePhoto 点赞
// @Router /api/photos/{id}/like [post]
func (h *PhotoHandler) LikePhoto(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	likes, err := h.photoService.LikePhoto(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, CounterResponse{ID: id, Likes: likes})
}
