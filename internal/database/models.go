// Package database 定义内容模型并负责数据库初始化
// 包含照片、视频、博客文章、联系留言和分类五张表
package database

import "time"

// 存储后端标识，与 storage.Backend 取值一致
const (
	StorageLocal  = "local"
	StorageRemote = "remote"
)

// 博客文章状态
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

// 联系留言状态
const (
	ContactStatusUnread   = "unread"
	ContactStatusRead     = "read"
	ContactStatusArchived = "archived"
)

// 分类类型
const (
	CategoryTypePhoto = "photo"
	CategoryTypeVideo = "video"
)

// DefaultCategory 未指定分类时使用的分类
const DefaultCategory = "general"

// DefaultUploader 上传者和作者的默认值
const DefaultUploader = "admin"

// Photo 照片
// Filepath 为对外可访问的路径或URL，StorageBackend/StorageLocator 用于删除时定位字节
type Photo struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Title          string    `gorm:"not null;size:255" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	Filename       string    `gorm:"not null;size:255" json:"filename"`
	Filepath       string    `gorm:"not null;size:1000" json:"filepath"`
	StorageBackend string    `gorm:"not null;size:10;default:'local'" json:"storage_backend"`
	StorageLocator string    `gorm:"not null;size:1000" json:"-"`
	Size           int64     `json:"size"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Category       string    `gorm:"size:100;default:'general';index" json:"category"`
	Tags           string    `gorm:"type:text" json:"tags"`
	Likes          int64     `gorm:"default:0" json:"likes"`
	UploadedBy     string    `gorm:"size:100;default:'admin'" json:"uploaded_by"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Photo) TableName() string {
	return "photos"
}

// Video 视频
// 全表最多只有一行 Featured 为 true
type Video struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Title          string    `gorm:"not null;size:255" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	Filename       string    `gorm:"not null;size:255" json:"filename"`
	Filepath       string    `gorm:"not null;size:1000" json:"filepath"`
	StorageBackend string    `gorm:"not null;size:10;default:'local'" json:"storage_backend"`
	StorageLocator string    `gorm:"not null;size:1000" json:"-"`
	Size           int64     `json:"size"`
	Thumbnail      string    `gorm:"size:1000" json:"thumbnail"`
	Duration       int       `gorm:"default:0" json:"duration"` // 秒
	Category       string    `gorm:"size:100;default:'general';index" json:"category"`
	Tags           string    `gorm:"type:text" json:"tags"`
	Views          int64     `gorm:"default:0" json:"views"`
	Likes          int64     `gorm:"default:0" json:"likes"`
	Featured       bool      `gorm:"not null;default:false" json:"featured"`
	UploadedBy     string    `gorm:"size:100;default:'admin'" json:"uploaded_by"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Video) TableName() string {
	return "videos"
}

// BlogPost 博客文章
type BlogPost struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Title         string    `gorm:"not null;size:255" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Excerpt       string    `gorm:"type:text" json:"excerpt"`
	Category      string    `gorm:"size:100;default:'general';index" json:"category"`
	Tags          string    `gorm:"type:text" json:"tags"`
	FeaturedImage string    `gorm:"size:1000" json:"featured_image"`
	Author        string    `gorm:"size:100;default:'admin'" json:"author"`
	Views         int64     `gorm:"default:0" json:"views"`
	Likes         int64     `gorm:"default:0" json:"likes"`
	Status        string    `gorm:"size:20;default:'published';index" json:"status"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName 指定表名
func (BlogPost) TableName() string {
	return "blog_posts"
}

// ContactMessage 联系留言
type ContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Email     string    `gorm:"not null;size:255" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Status    string    `gorm:"size:20;default:'unread';index" json:"status"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// Category 分类，(name, type) 唯一
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null;size:100;uniqueIndex:idx_categories_name_type" json:"name"`
	Type      string    `gorm:"not null;size:10;uniqueIndex:idx_categories_name_type" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// AllModels 返回需要迁移的全部模型
func AllModels() []interface{} {
	return []interface{}{
		&Photo{},
		&Video{},
		&BlogPost{},
		&ContactMessage{},
		&Category{},
	}
}
