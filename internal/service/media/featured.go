package media

import (
	"context"
	stderrors "errors"

	"github.com/weiwangfds/easterblog/internal/database"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/logger"
	"github.com/weiwangfds/easterblog/internal/metrics"
	"gorm.io/gorm"
)

// SetFeatured 在同一事务中清除其他视频的精选标记并设置目标视频
// 其他事务不会观察到中间状态；取消精选只影响目标视频
func (s *videoService) SetFeatured(ctx context.Context, id uint, featured bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target database.Video
		if err := tx.Select("id").First(&target, id).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Video not found")
			}
			return err
		}

		if featured {
			if err := tx.Model(&database.Video{}).
				Where("id <> ? AND featured = ?", id, true).
				Update("featured", false).Error; err != nil {
				return err
			}
		}

		return tx.Model(&database.Video{}).
			Where("id = ?", id).
			Update("featured", featured).Error
	})
	if err != nil {
		if appErr, ok := apperrors.GetAppError(err); ok {
			return appErr
		}
		return apperrors.Database("Failed to update featured video", err)
	}

	metrics.FeaturedChanges.Inc()
	logger.Infof("精选视频已更新: id=%d, featured=%v", id, featured)
	return nil
}

// GetFeatured 返回精选视频，没有时返回 nil, nil
func (s *videoService) GetFeatured(ctx context.Context) (*database.Video, error) {
	var videos []database.Video
	err := s.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("updated_at DESC").
		Limit(1).
		Find(&videos).Error
	if err != nil {
		return nil, apperrors.Database("Failed to fetch featured video", err)
	}
	if len(videos) == 0 {
		return nil, nil
	}
	return &videos[0], nil
}
