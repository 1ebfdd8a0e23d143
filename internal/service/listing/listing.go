// Package listing 处理列表查询的分页、筛选和排序
package listing

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultLimit 默认每页条数
	DefaultLimit = 50
	// MaxLimit 单次查询上限
	MaxLimit = 500
	// All 表示不筛选
	All = "all"
)

// Params 列表查询参数
type Params struct {
	Category string
	Status   string
	Limit    int
	Offset   int
}

// Parse 从查询字符串解析参数，非法值回退到默认值
func Parse(category, status, limit, offset string) Params {
	p := Params{
		Category: strings.TrimSpace(category),
		Status:   strings.TrimSpace(status),
		Limit:    DefaultLimit,
	}
	if n, err := strconv.Atoi(limit); err == nil {
		p.Limit = n
	}
	if n, err := strconv.Atoi(offset); err == nil {
		p.Offset = n
	}
	return p.Normalize()
}

// Normalize 修正越界的分页参数
func (p Params) Normalize() Params {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Filter 返回需要筛选的值，空值和 all 表示不筛选
func Filter(value string) (string, bool) {
	if value == "" || strings.EqualFold(value, All) {
		return "", false
	}
	return value, true
}

// Apply 追加分类筛选、排序和分页
// 按创建时间倒序，同一时间按ID倒序，保证分页稳定
func Apply(db *gorm.DB, p Params) *gorm.DB {
	p = p.Normalize()
	if category, ok := Filter(p.Category); ok {
		db = db.Where("category = ?", category)
	}
	return db.Order("created_at DESC").Order("id DESC").Limit(p.Limit).Offset(p.Offset)
}
