package media

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/weiwangfds/easterblog/internal/database"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/logger"
	"github.com/weiwangfds/easterblog/internal/service/listing"
	"github.com/weiwangfds/easterblog/internal/service/records"
	"github.com/weiwangfds/easterblog/internal/storage"
	"gorm.io/gorm"
)

// PhotoService 照片服务接口
type PhotoService interface {
	ListPhotos(ctx context.Context, params listing.Params) ([]database.Photo, error)
	GetPhoto(ctx context.Context, id uint) (*database.Photo, error)
	CreatePhoto(ctx context.Context, req *CreatePhotoRequest) (*database.Photo, error)
	UpdatePhoto(ctx context.Context, id uint, req *UpdatePhotoRequest) error
	DeletePhoto(ctx context.Context, id uint) error
	LikePhoto(ctx context.Context, id uint) (int64, error)
}

// CreatePhotoRequest 上传照片请求
type CreatePhotoRequest struct {
	File        *FileInput
	Title       string
	Description string
	Category    string
	Tags        string
}

// UpdatePhotoRequest 更新照片请求，nil 字段保持原值
type UpdatePhotoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Tags        *string `json:"tags"`
}

type photoService struct {
	db     *gorm.DB
	store  Storage
	policy Policy
}

// NewPhotoService 创建照片服务
func NewPhotoService(db *gorm.DB, store Storage, maxSize int64) PhotoService {
	return &photoService{
		db:     db,
		store:  store,
		policy: PhotoPolicy(maxSize),
	}
}

func (s *photoService) ListPhotos(ctx context.Context, params listing.Params) ([]database.Photo, error) {
	photos := make([]database.Photo, 0)
	if err := listing.Apply(s.db.WithContext(ctx), params).Find(&photos).Error; err != nil {
		return nil, apperrors.Database("Failed to fetch photos", err)
	}
	return photos, nil
}

func (s *photoService) GetPhoto(ctx context.Context, id uint) (*database.Photo, error) {
	var photo database.Photo
	if err := records.FindByID(ctx, s.db, &photo, id, "Photo"); err != nil {
		return nil, err
	}
	return &photo, nil
}

// CreatePhoto 校验并写入存储，再插入记录
// 插入失败时清理已写入的字节
func (s *photoService) CreatePhoto(ctx context.Context, req *CreatePhotoRequest) (*database.Photo, error) {
	if err := s.policy.Check(req.File); err != nil {
		return nil, err
	}

	head := &headCapture{}
	var body io.Reader = req.File.Body
	if s.policy.MaxSize > 0 {
		body = newLimitedReader(body, s.policy.MaxSize)
	}

	obj, err := s.store.Save(ctx, storage.Upload{
		Kind:        storage.KindPhoto,
		Filename:    req.File.Filename,
		ContentType: req.File.ContentType,
		Size:        req.File.Size,
		Body:        io.TeeReader(body, head),
	})
	if err != nil {
		return nil, err
	}

	width, height, err := head.dimensions()
	if err != nil {
		logger.WithFields(logrus.Fields{
			"filename": req.File.Filename,
			"locator":  obj.Ref.Locator,
		}).WithError(err).Warn("无法解析图片尺寸")
	}

	photo := &database.Photo{
		Title:          defaultTitle(req.Title, req.File.Filename),
		Description:    req.Description,
		Filename:       obj.Filename,
		Filepath:       obj.PublicPath,
		StorageBackend: string(obj.Ref.Backend),
		StorageLocator: obj.Ref.Locator,
		Size:           obj.Size,
		Width:          width,
		Height:         height,
		Category:       orDefault(req.Category, database.DefaultCategory),
		Tags:           req.Tags,
		UploadedBy:     database.DefaultUploader,
	}

	if err := s.db.WithContext(ctx).Create(photo).Error; err != nil {
		s.store.Remove(ctx, obj.Ref)
		return nil, apperrors.Database("Failed to save photo", err)
	}

	logger.Infof("照片上传成功: id=%d, title=%s, backend=%s", photo.ID, photo.Title, photo.StorageBackend)
	return photo, nil
}

func (s *photoService) UpdatePhoto(ctx context.Context, id uint, req *UpdatePhotoRequest) error {
	if err := requireTitle(req.Title); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	setText(updates, "title", req.Title)
	setText(updates, "description", req.Description)
	setText(updates, "category", req.Category)
	setText(updates, "tags", req.Tags)

	return records.UpdateColumns(ctx, s.db, &database.Photo{}, id, updates, "Photo")
}

// DeletePhoto 删除记录后尽力删除字节
func (s *photoService) DeletePhoto(ctx context.Context, id uint) error {
	var photo database.Photo
	if err := records.FindByID(ctx, s.db, &photo, id, "Photo"); err != nil {
		return err
	}

	if err := records.Delete(ctx, s.db, &database.Photo{}, id, "Photo"); err != nil {
		return err
	}

	s.store.Remove(ctx, refOf(photo.StorageBackend, photo.StorageLocator))
	logger.Infof("照片已删除: id=%d", id)
	return nil
}

func (s *photoService) LikePhoto(ctx context.Context, id uint) (int64, error) {
	return records.Increment(ctx, s.db, &database.Photo{}, id, "likes", "Photo")
}
