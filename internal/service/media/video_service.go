package media

import (
	"context"
	"io"

	"github.com/weiwangfds/easterblog/internal/database"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/logger"
	"github.com/weiwangfds/easterblog/internal/service/listing"
	"github.com/weiwangfds/easterblog/internal/service/records"
	"github.com/weiwangfds/easterblog/internal/storage"
	"gorm.io/gorm"
)

// VideoService 视频服务接口
type VideoService interface {
	ListVideos(ctx context.Context, params listing.Params) ([]database.Video, error)
	GetVideo(ctx context.Context, id uint) (*database.Video, error)
	CreateVideo(ctx context.Context, req *CreateVideoRequest) (*database.Video, error)
	UpdateVideo(ctx context.Context, id uint, req *UpdateVideoRequest) error
	DeleteVideo(ctx context.Context, id uint) error

	// SetFeatured 设置或取消精选，设置时先清除其他视频的精选标记
	SetFeatured(ctx context.Context, id uint, featured bool) error
	// GetFeatured 返回当前精选视频，没有时返回 nil, nil
	GetFeatured(ctx context.Context) (*database.Video, error)

	RecordView(ctx context.Context, id uint) (int64, error)
	LikeVideo(ctx context.Context, id uint) (int64, error)
}

// CreateVideoRequest 上传视频请求
type CreateVideoRequest struct {
	File        *FileInput
	Title       string
	Description string
	Category    string
	Tags        string
	Thumbnail   string
	Duration    int
}

// UpdateVideoRequest 更新视频请求，nil 字段保持原值
type UpdateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Tags        *string `json:"tags"`
	Thumbnail   *string `json:"thumbnail"`
	Duration    *int    `json:"duration"`
}

type videoService struct {
	db     *gorm.DB
	store  Storage
	policy Policy
}

// NewVideoService 创建视频服务
func NewVideoService(db *gorm.DB, store Storage, maxSize int64) VideoService {
	return &videoService{
		db:     db,
		store:  store,
		policy: VideoPolicy(maxSize),
	}
}

func (s *videoService) ListVideos(ctx context.Context, params listing.Params) ([]database.Video, error) {
	videos := make([]database.Video, 0)
	if err := listing.Apply(s.db.WithContext(ctx), params).Find(&videos).Error; err != nil {
		return nil, apperrors.Database("Failed to fetch videos", err)
	}
	return videos, nil
}

func (s *videoService) GetVideo(ctx context.Context, id uint) (*database.Video, error) {
	var video database.Video
	if err := records.FindByID(ctx, s.db, &video, id, "Video"); err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *videoService) CreateVideo(ctx context.Context, req *CreateVideoRequest) (*database.Video, error) {
	if err := s.policy.Check(req.File); err != nil {
		return nil, err
	}
	if req.Duration < 0 {
		return nil, apperrors.Validation("Duration cannot be negative")
	}

	var body io.Reader = req.File.Body
	if s.policy.MaxSize > 0 {
		body = newLimitedReader(body, s.policy.MaxSize)
	}

	obj, err := s.store.Save(ctx, storage.Upload{
		Kind:        storage.KindVideo,
		Filename:    req.File.Filename,
		ContentType: req.File.ContentType,
		Size:        req.File.Size,
		Body:        body,
	})
	if err != nil {
		return nil, err
	}

	video := &database.Video{
		Title:          defaultTitle(req.Title, req.File.Filename),
		Description:    req.Description,
		Filename:       obj.Filename,
		Filepath:       obj.PublicPath,
		StorageBackend: string(obj.Ref.Backend),
		StorageLocator: obj.Ref.Locator,
		Size:           obj.Size,
		Thumbnail:      req.Thumbnail,
		Duration:       req.Duration,
		Category:       orDefault(req.Category, database.DefaultCategory),
		Tags:           req.Tags,
		UploadedBy:     database.DefaultUploader,
	}

	if err := s.db.WithContext(ctx).Create(video).Error; err != nil {
		s.store.Remove(ctx, obj.Ref)
		return nil, apperrors.Database("Failed to save video", err)
	}

	logger.Infof("视频上传成功: id=%d, title=%s, backend=%s", video.ID, video.Title, video.StorageBackend)
	return video, nil
}

func (s *videoService) UpdateVideo(ctx context.Context, id uint, req *UpdateVideoRequest) error {
	if err := requireTitle(req.Title); err != nil {
		return err
	}
	if req.Duration != nil && *req.Duration < 0 {
		return apperrors.Validation("Duration cannot be negative")
	}

	updates := map[string]interface{}{}
	setText(updates, "title", req.Title)
	setText(updates, "description", req.Description)
	setText(updates, "category", req.Category)
	setText(updates, "tags", req.Tags)
	setText(updates, "thumbnail", req.Thumbnail)
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}

	return records.UpdateColumns(ctx, s.db, &database.Video{}, id, updates, "Video")
}

// DeleteVideo 删除记录后尽力删除字节
// 删除精选视频后不会自动提升其他视频
func (s *videoService) DeleteVideo(ctx context.Context, id uint) error {
	var video database.Video
	if err := records.FindByID(ctx, s.db, &video, id, "Video"); err != nil {
		return err
	}

	if err := records.Delete(ctx, s.db, &database.Video{}, id, "Video"); err != nil {
		return err
	}

	s.store.Remove(ctx, refOf(video.StorageBackend, video.StorageLocator))
	logger.Infof("视频已删除: id=%d, featured=%v", id, video.Featured)
	return nil
}

func (s *videoService) RecordView(ctx context.Context, id uint) (int64, error) {
	return records.Increment(ctx, s.db, &database.Video{}, id, "views", "Video")
}

func (s *videoService) LikeVideo(ctx context.Context, id uint) (int64, error) {
	return records.Increment(ctx, s.db, &database.Video{}, id, "likes", "Video")
}
