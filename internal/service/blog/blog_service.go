// Package blog 提供博客文章服务
package blog

import (
	"context"
	stderrors "errors"
	"regexp"
	"strings"

	"github.com/weiwangfds/easterblog/internal/database"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/logger"
	"github.com/weiwangfds/easterblog/internal/service/listing"
	"github.com/weiwangfds/easterblog/internal/service/records"
	"gorm.io/gorm"
)

// ExcerptLength 自动摘要保留的字符数
const ExcerptLength = 150

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// BlogService 博客文章服务接口
type BlogService interface {
	// ListPosts 按状态筛选，状态为空时只返回已发布的文章，all 表示全部
	ListPosts(ctx context.Context, params listing.Params) ([]database.BlogPost, error)
	// GetPublishedPost 只返回已发布的文章
	GetPublishedPost(ctx context.Context, id uint) (*database.BlogPost, error)
	CreatePost(ctx context.Context, req *CreatePostRequest) (*database.BlogPost, error)
	UpdatePost(ctx context.Context, id uint, req *UpdatePostRequest) error
	DeletePost(ctx context.Context, id uint) error
	RecordView(ctx context.Context, id uint) (int64, error)
	LikePost(ctx context.Context, id uint) (int64, error)
}

// CreatePostRequest 创建文章请求
type CreatePostRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt"`
	Category      string `json:"category"`
	Tags          string `json:"tags"`
	FeaturedImage string `json:"featured_image"`
	Author        string `json:"author"`
	Status        string `json:"status"`
}

// UpdatePostRequest 更新文章请求，nil 字段保持原值
// Excerpt 显式传空字符串时按内容重新生成
type UpdatePostRequest struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	Category      *string `json:"category"`
	Tags          *string `json:"tags"`
	FeaturedImage *string `json:"featured_image"`
	Status        *string `json:"status"`
}

type blogService struct {
	db *gorm.DB
}

// NewBlogService 创建博客服务
func NewBlogService(db *gorm.DB) BlogService {
	return &blogService{db: db}
}

// MakeExcerpt 去掉标签后截取前 ExcerptLength 个字符并追加省略号
func MakeExcerpt(content string) string {
	text := markupPattern.ReplaceAllString(content, "")
	runes := []rune(text)
	if len(runes) > ExcerptLength {
		runes = runes[:ExcerptLength]
	}
	return string(runes) + "..."
}

func validStatus(status string) bool {
	return status == database.BlogStatusDraft || status == database.BlogStatusPublished
}

func (s *blogService) ListPosts(ctx context.Context, params listing.Params) ([]database.BlogPost, error) {
	db := s.db.WithContext(ctx)

	status := params.Status
	if status == "" {
		status = database.BlogStatusPublished
	}
	if value, ok := listing.Filter(status); ok {
		db = db.Where("status = ?", value)
	}

	posts := make([]database.BlogPost, 0)
	if err := listing.Apply(db, params).Find(&posts).Error; err != nil {
		return nil, apperrors.Database("Failed to fetch blog posts", err)
	}
	return posts, nil
}

func (s *blogService) GetPublishedPost(ctx context.Context, id uint) (*database.BlogPost, error) {
	var post database.BlogPost
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, database.BlogStatusPublished).
		First(&post).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Blog post not found")
	}
	if err != nil {
		return nil, apperrors.Database("Failed to fetch blog post", err)
	}
	return &post, nil
}

func (s *blogService) CreatePost(ctx context.Context, req *CreatePostRequest) (*database.BlogPost, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.Validation("Title and content are required")
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = database.BlogStatusPublished
	}
	if !validStatus(status) {
		return nil, apperrors.Validation("Invalid status. Must be draft or published")
	}

	excerpt := strings.TrimSpace(req.Excerpt)
	if excerpt == "" {
		excerpt = MakeExcerpt(req.Content)
	}

	post := &database.BlogPost{
		Title:         title,
		Content:       req.Content,
		Excerpt:       excerpt,
		Category:      orDefault(req.Category, database.DefaultCategory),
		Tags:          req.Tags,
		FeaturedImage: req.FeaturedImage,
		Author:        orDefault(req.Author, database.DefaultUploader),
		Status:        status,
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, apperrors.Database("Failed to create blog post", err)
	}

	logger.Infof("博客文章已创建: id=%d, status=%s", post.ID, post.Status)
	return post, nil
}

func (s *blogService) UpdatePost(ctx context.Context, id uint, req *UpdatePostRequest) error {
	updates := map[string]interface{}{}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return apperrors.Validation("Title cannot be empty")
		}
		updates["title"] = title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return apperrors.Validation("Content cannot be empty")
		}
		updates["content"] = *req.Content
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return apperrors.Validation("Invalid status. Must be draft or published")
		}
		updates["status"] = *req.Status
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.FeaturedImage != nil {
		updates["featured_image"] = *req.FeaturedImage
	}

	if req.Excerpt != nil {
		excerpt := strings.TrimSpace(*req.Excerpt)
		if excerpt == "" {
			content, err := s.contentFor(ctx, id, req.Content)
			if err != nil {
				return err
			}
			excerpt = MakeExcerpt(content)
		}
		updates["excerpt"] = excerpt
	}

	return records.UpdateColumns(ctx, s.db, &database.BlogPost{}, id, updates, "Blog post")
}

// contentFor 返回更新后的内容，未更新内容时读取已存储的内容
func (s *blogService) contentFor(ctx context.Context, id uint, content *string) (string, error) {
	if content != nil {
		return *content, nil
	}
	var post database.BlogPost
	if err := records.FindByID(ctx, s.db, &post, id, "Blog post"); err != nil {
		return "", err
	}
	return post.Content, nil
}

func (s *blogService) DeletePost(ctx context.Context, id uint) error {
	if err := records.Delete(ctx, s.db, &database.BlogPost{}, id, "Blog post"); err != nil {
		return err
	}
	logger.Infof("博客文章已删除: id=%d", id)
	return nil
}

func (s *blogService) RecordView(ctx context.Context, id uint) (int64, error) {
	return records.Increment(ctx, s.db, &database.BlogPost{}, id, "views", "Blog post")
}

func (s *blogService) LikePost(ctx context.Context, id uint) (int64, error) {
	return records.Increment(ctx, s.db, &database.BlogPost{}, id, "likes", "Blog post")
}

func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}
