package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/easterblog/internal/database"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
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

func TestRecords(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	photo := &database.Photo{Title: "egg", Filename: "egg.png", Filepath: "/uploads/photos/egg.png", Category: "Nature"}
	require.NoError(t, db.Create(photo).Error)

	t.Run("查询", func(t *testing.T) {
		var got database.Photo
		require.NoError(t, FindByID(ctx, db, &got, photo.ID, "Photo"))
		assert.Equal(t, "egg", got.Title)

		err := FindByID(ctx, db, &got, 999, "Photo")
		assert.True(t, apperrors.IsNotFound(err))
		appErr, ok := apperrors.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Photo not found", appErr.Message)
	})

	t.Run("部分更新只写入给定列", func(t *testing.T) {
		err := UpdateColumns(ctx, db, &database.Photo{}, photo.ID, map[string]interface{}{"title": "bunny"}, "Photo")
		require.NoError(t, err)

		var got database.Photo
		require.NoError(t, db.First(&got, photo.ID).Error)
		assert.Equal(t, "bunny", got.Title)
		assert.Equal(t, "Nature", got.Category)
	})

	t.Run("空更新只检查存在性", func(t *testing.T) {
		assert.NoError(t, UpdateColumns(ctx, db, &database.Photo{}, photo.ID, nil, "Photo"))
		err := UpdateColumns(ctx, db, &database.Photo{}, 999, nil, "Photo")
		assert.True(t, apperrors.IsNotFound(err))

		err = UpdateColumns(ctx, db, &database.Photo{}, 999, map[string]interface{}{"title": "x"}, "Photo")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("计数自增", func(t *testing.T) {
		n, err := Increment(ctx, db, &database.Photo{}, photo.ID, "likes", "Photo")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = Increment(ctx, db, &database.Photo{}, photo.ID, "likes", "Photo")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		_, err = Increment(ctx, db, &database.Photo{}, 999, "likes", "Photo")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, Delete(ctx, db, &database.Photo{}, photo.ID, "Photo"))
		err := Delete(ctx, db, &database.Photo{}, photo.ID, "Photo")
		assert.True(t, apperrors.IsNotFound(err))
	})
}
