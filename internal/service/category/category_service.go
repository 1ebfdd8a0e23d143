// Package category 提供分类查询
package category

import (
	"context"

	"github.com/weiwangfds/easterblog/internal/database"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"gorm.io/gorm"
)

// CategoryService 分类服务接口
type CategoryService interface {
	// ListCategories 按类型列出分类，类型只能是 photo 或 video
	ListCategories(ctx context.Context, categoryType string) ([]database.Category, error)
}

type categoryService struct {
	db *gorm.DB
}

// NewCategoryService 创建分类服务
func NewCategoryService(db *gorm.DB) CategoryService {
	return &categoryService{db: db}
}

func (s *categoryService) ListCategories(ctx context.Context, categoryType string) ([]database.Category, error) {
	if categoryType != database.CategoryTypePhoto && categoryType != database.CategoryTypeVideo {
		return nil, apperrors.Validation("Invalid category type. Must be photo or video")
	}

	categories := make([]database.Category, 0)
	err := s.db.WithContext(ctx).
		Where("type = ?", categoryType).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, apperrors.Database("Failed to fetch categories", err)
	}
	return categories, nil
}
