package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/response"
	"github.com/weiwangfds/easterblog/internal/service/media"
)

// VideoHandler 视频处理器
type VideoHandler struct {
	videoService media.VideoService
	maxSize      int64
}

// FeaturedRequest 设置精选请求
type FeaturedRequest struct {
	Featured *bool `json:"featured"`
}

// NewVideoHandler 创建视频处理器实例
func NewVideoHandler(videoService media.VideoService, maxSize int64) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		maxSize:      maxSize,
	}
}

// ListVideos 获取视频列表
// @Summary 获取视频列表
// @Tags 视频
// @Produce json
// @Param category query string false "分类，all 表示全部"
// @Param limit query int false "每页条数" default(50)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} database.Video
// @Router /api/videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	videos, err := h.videoService.ListVideos(c.Request.Context(), listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, videos)
}

// GetFeatured 获取精选视频，没有时返回 null
// @Summary 获取精选视频
// @Tags 视频
// @Produce json
// @Success 200 {object} database.Video
// @Router /api/videos/featured [get]
func (h *VideoHandler) GetFeatured(c *gin.Context) {
	video, err := h.videoService.GetFeatured(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, video)
}

// GetVideo 获取视频详情
// @Summary 获取视频详情
// @Tags 视频
// @Produce json
// @Param id path int true "视频ID"
// @Success 200 {object} database.Video
// @Failure 404 {object} response.ErrorBody "视频不存在"
// @Router /api/videos/{id} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	video, err := h.videoService.GetVideo(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, video)
}

// UploadVideo 上传视频
// @Summary 上传视频
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Param video formData file true "MP4文件"
// @Param title formData string false "标题，默认为文件名"
// @Param description formData string false "描述"
// @Param category formData string false "分类"
// @Param tags formData string false "标签"
// @Param thumbnail formData string false "缩略图地址"
// @Param duration formData int false "时长（秒）"
// @Success 201 {object} database.Video
// @Failure 400 {object} response.ErrorBody "文件缺失、类型不允许或超出大小"
// @Router /api/videos [post]
func (h *VideoHandler) UploadVideo(c *gin.Context) {
	file, closer, err := formFile(c, "video", h.maxSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeQuietly(closer)

	duration := 0
	if raw := strings.TrimSpace(c.PostForm("duration")); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			response.Error(c, apperrors.Validation("Duration must be a whole number of seconds"))
			return
		}
	}

	video, err := h.videoService.CreateVideo(c.Request.Context(), &media.CreateVideoRequest{
		File:        file,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Tags:        c.PostForm("tags"),
		Thumbnail:   c.PostForm("thumbnail"),
		Duration:    duration,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, video)
}

// UpdateVideo 部分更新视频
// @Summary 更新视频信息
// @Description 只更新请求中出现的字段
// @Tags 视频
// @Accept json
// @Produce json
// @Param id path int true "视频ID"
// @Param video body media.UpdateVideoRequest true "更新内容"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody "视频不存在"
// @Router /api/videos/{id} [put]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req media.UpdateVideoRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.videoService.UpdateVideo(c.Request.Context(), id, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Video updated successfully")
}

// SetFeatured 设置或取消精选
// @Summary 设置精选视频
// @Description featured 为 true 时该视频成为唯一的精选视频
// @Tags 视频
// @Accept json
// @Produce json
// @Param id path int true "视频ID"
// @Param body body FeaturedRequest true "精选状态"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody "视频不存在"
// @Router /api/videos/{id}/featured [put]
func (h *VideoHandler) SetFeatured(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req FeaturedRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.Featured == nil {
		response.Error(c, apperrors.Validation("featured must be a boolean"))
		return
	}

	if err := h.videoService.SetFeatured(c.Request.Context(), id, *req.Featured); err != nil {
		response.Error(c, err)
		return
	}
	if *req.Featured {
		response.Message(c, "Video set as featured successfully")
		return
	}
	response.Message(c, "Video removed from featured successfully")
}

// DeleteVideo 删除视频
// @Summary 删除视频
// @Tags 视频
// @Produce json
// @Param id path int true "视频ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody "视频不存在"
// @Router /api/videos/{id} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.videoService.DeleteVideo(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Video deleted successfully")
}

// RecordView 记录一次播放
// @Router /api/videos/{id}/view [post]
func (h *VideoHandler) RecordView(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	views, err := h.videoService.RecordView(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, CounterResponse{ID: id, Views: views})
}

// LikeVideo 点赞
// @Router /api/videos/{id}/like [post]
func (h *VideoHandler) LikeVideo(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	likes, err := h.videoService.LikeVideo(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, CounterResponse{ID: id, Likes: likes})
}
