// Package contact 提供联系留言服务
package contact

import (
	"context"
	"regexp"
	"strings"

	"github.com/weiwangfds/easterblog/internal/database"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/logger"
	"github.com/weiwangfds/easterblog/internal/service/listing"
	"github.com/weiwangfds/easterblog/internal/service/records"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactService 联系留言服务接口
type ContactService interface {
	CreateMessage(ctx context.Context, req *CreateMessageRequest) (*database.ContactMessage, error)
	ListMessages(ctx context.Context, params listing.Params) ([]database.ContactMessage, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	DeleteMessage(ctx context.Context, id uint) error
}

// CreateMessageRequest 提交留言请求
type CreateMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactService struct {
	db *gorm.DB
}

// NewContactService 创建联系留言服务
func NewContactService(db *gorm.DB) ContactService {
	return &contactService{db: db}
}

// ValidEmail 基本的邮箱格式校验
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidStatus 留言状态只能是 unread、read、archived
func ValidStatus(status string) bool {
	switch status {
	case database.ContactStatusUnread, database.ContactStatusRead, database.ContactStatusArchived:
		return true
	}
	return false
}

func (s *contactService) CreateMessage(ctx context.Context, req *CreateMessageRequest) (*database.ContactMessage, error) {
	msg := &database.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
		Status:  database.ContactStatusUnread,
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return nil, apperrors.Validation("Name, email, and message are required")
	}
	if !ValidEmail(msg.Email) {
		return nil, apperrors.Validation("Invalid email format")
	}

	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, apperrors.Database("Failed to save message", err)
	}

	logger.Infof("收到新留言: id=%d", msg.ID)
	return msg, nil
}

func (s *contactService) ListMessages(ctx context.Context, params listing.Params) ([]database.ContactMessage, error) {
	db := s.db.WithContext(ctx)
	if status, ok := listing.Filter(params.Status); ok {
		db = db.Where("status = ?", status)
	}
	params.Category = ""

	messages := make([]database.ContactMessage, 0)
	if err := listing.Apply(db, params).Find(&messages).Error; err != nil {
		return nil, apperrors.Database("Failed to fetch messages", err)
	}
	return messages, nil
}

func (s *contactService) UpdateStatus(ctx context.Context, id uint, status string) error {
	status = strings.TrimSpace(status)
	if !ValidStatus(status) {
		return apperrors.Validation("Valid status (read, unread, archived) is required")
	}
	return records.UpdateColumns(ctx, s.db, &database.ContactMessage{}, id,
		map[string]interface{}{"status": status}, "Contact message")
}

func (s *contactService) DeleteMessage(ctx context.Context, id uint) error {
	return records.Delete(ctx, s.db, &database.ContactMessage{}, id, "Contact message")
}
