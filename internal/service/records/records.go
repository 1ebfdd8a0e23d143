// Package records 提供按ID查询、部分更新和计数自增等通用的单行操作
package records

import (
	"context"
	stderrors "errors"
	"strings"

	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"gorm.io/gorm"
)

// FindByID 按ID查询记录，不存在时返回 NotFound
func FindByID(ctx context.Context, db *gorm.DB, dest interface{}, id uint, entity string) error {
	err := db.WithContext(ctx).First(dest, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entity + " not found")
	}
	if err != nil {
		return apperrors.Database("Failed to fetch "+strings.ToLower(entity), err)
	}
	return nil
}

// UpdateColumns 部分更新，只写入 updates 中出现的列
// 影响行数为0视为记录不存在
func UpdateColumns(ctx context.Context, db *gorm.DB, model interface{}, id uint, updates map[string]interface{}, entity string) error {
	db = db.WithContext(ctx)
	if len(updates) == 0 {
		return Exists(ctx, db, model, id, entity)
	}

	res := db.Model(model).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return apperrors.Database("Failed to update "+strings.ToLower(entity), res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(entity + " not found")
	}
	return nil
}

// Exists 记录不存在时返回 NotFound
func Exists(ctx context.Context, db *gorm.DB, model interface{}, id uint, entity string) error {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Database("Failed to fetch "+strings.ToLower(entity), err)
	}
	if count == 0 {
		return apperrors.NotFound(entity + " not found")
	}
	return nil
}

// Delete 按ID删除，影响行数为0返回 NotFound
func Delete(ctx context.Context, db *gorm.DB, model interface{}, id uint, entity string) error {
	res := db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return apperrors.Database("Failed to delete "+strings.ToLower(entity), res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(entity + " not found")
	}
	return nil
}

// Increment 计数列加一并返回新值
func Increment(ctx context.Context, db *gorm.DB, model interface{}, id uint, column, entity string) (int64, error) {
	db = db.WithContext(ctx)
	res := db.Model(model).Where("id = ?", id).UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		return 0, apperrors.Database("Failed to update "+strings.ToLower(entity), res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, apperrors.NotFound(entity + " not found")
	}

	var value int64
	if err := db.Model(model).Where("id = ?", id).Select(column).Row().Scan(&value); err != nil {
		return 0, apperrors.Database("Failed to read "+column, err)
	}
	return value, nil
}
