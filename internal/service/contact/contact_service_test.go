package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/easterblog/internal/database"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/service/listing"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func TestValidEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.com":          true,
		"first.last@x.org": true,
		"not-an-email":     false,
		"a@b":              false,
		"a b@c.com":        false,
		"@b.com":           false,
		"":                 false,
	}
	for email, want := range cases {
		assert.Equal(t, want, ValidEmail(email), email)
	}
}

func TestCreateMessage(t *testing.T) {
	ctx := context.Background()
	svc := NewContactService(setupTestDB(t))

	t.Run("拒绝非法邮箱", func(t *testing.T) {
		_, err := svc.CreateMessage(ctx, &CreateMessageRequest{Name: "n", Email: "not-an-email", Message: "hi"})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("必填字段去除空白后校验", func(t *testing.T) {
		_, err := svc.CreateMessage(ctx, &CreateMessageRequest{Name: "  ", Email: "a@b.com", Message: "hi"})
		require.Error(t, err)
		appErr, ok := apperrors.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Name, email, and message are required", appErr.Message)
	})

	t.Run("合法留言默认未读", func(t *testing.T) {
		msg, err := svc.CreateMessage(ctx, &CreateMessageRequest{Name: " Ann ", Email: "a@b.com", Message: " hello "})
		require.NoError(t, err)
		assert.NotZero(t, msg.ID)
		assert.Equal(t, "Ann", msg.Name)
		assert.Equal(t, "hello", msg.Message)
		assert.Equal(t, database.ContactStatusUnread, msg.Status)
	})
}

func TestMessageLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewContactService(setupTestDB(t))

	first, err := svc.CreateMessage(ctx, &CreateMessageRequest{Name: "a", Email: "a@b.com", Message: "one"})
	require.NoError(t, err)
	second, err := svc.CreateMessage(ctx, &CreateMessageRequest{Name: "b", Email: "b@b.com", Message: "two"})
	require.NoError(t, err)

	t.Run("更新状态并按状态筛选", func(t *testing.T) {
		require.NoError(t, svc.UpdateStatus(ctx, first.ID, database.ContactStatusRead))

		read, err := svc.ListMessages(ctx, listing.Params{Status: database.ContactStatusRead})
		require.NoError(t, err)
		require.Len(t, read, 1)
		assert.Equal(t, first.ID, read[0].ID)

		all, err := svc.ListMessages(ctx, listing.Params{Status: listing.All})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("非法状态返回400", func(t *testing.T) {
		err := svc.UpdateStatus(ctx, second.ID, "spam")
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("不存在的留言返回404", func(t *testing.T) {
		assert.True(t, apperrors.IsNotFound(svc.UpdateStatus(ctx, 9999, database.ContactStatusArchived)))
		assert.True(t, apperrors.IsNotFound(svc.DeleteMessage(ctx, 9999)))
	})

	t.Run("删除留言", func(t *testing.T) {
		require.NoError(t, svc.DeleteMessage(ctx, second.ID))
		all, err := svc.ListMessages(ctx, listing.Params{})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, first.ID, all[0].ID)
	})
}
