package database

import (
	"github.com/weiwangfds/easterblog/internal/logger"
	"gorm.io/gorm"
)

// Migrate 迁移表结构并创建复合索引
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return err
	}
	return createIndexes(db)
}

// createIndexes 创建列表查询和精选视频所需的索引
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// 分类筛选 + 按创建时间倒序
		"CREATE INDEX IF NOT EXISTS idx_photos_category_created ON photos(category, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_videos_category_created ON videos(category, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_blog_posts_status_created ON blog_posts(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_contact_messages_status_created ON contact_messages(status, created_at DESC)",
		// 至多一个精选视频
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_videos_single_featured ON videos(featured) WHERE featured = true",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			logger.Errorf("创建索引失败: %s, 错误: %v", indexSQL, err)
			return err
		}
	}
	return nil
}

// DefaultCategories 默认分类
var DefaultCategories = []Category{
	{Name: "Easter Specials", Type: CategoryTypeVideo},
	{Name: "Cooking", Type: CategoryTypeVideo},
	{Name: "Traditions", Type: CategoryTypeVideo},
	{Name: "Adventures", Type: CategoryTypeVideo},
	{Name: "General", Type: CategoryTypeVideo},
	{Name: "Easter Photos", Type: CategoryTypePhoto},
	{Name: "Family", Type: CategoryTypePhoto},
	{Name: "Decorations", Type: CategoryTypePhoto},
	{Name: "Nature", Type: CategoryTypePhoto},
	{Name: "General", Type: CategoryTypePhoto},
}

// SeedCategories 写入默认分类，已存在的跳过
func SeedCategories(db *gorm.DB) error {
	for _, c := range DefaultCategories {
		category := c
		if err := db.Where(Category{Name: category.Name, Type: category.Type}).
			FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}
	logger.Debugf("默认分类初始化完成 (%d)", len(DefaultCategories))
	return nil
}
