package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/easterblog/internal/database"
)

func photoKey(p database.Photo) uint { return p.ID }

func loadedCache(t *testing.T, ids ...uint) *ListCache[database.Photo] {
	cache := NewListCache(photoKey)
	require.NoError(t, cache.Load(context.Background(), func(context.Context) ([]database.Photo, error) {
		photos := make([]database.Photo, 0, len(ids))
		for _, id := range ids {
			photos = append(photos, database.Photo{ID: id, Title: "p"})
		}
		return photos, nil
	}))
	return cache
}

func idsOf(photos []database.Photo) []uint {
	out := make([]uint, 0, len(photos))
	for _, p := range photos {
		out = append(out, p.ID)
	}
	return out
}

func TestListCache(t *testing.T) {
	ctx := context.Background()

	t.Run("加载失败时保留原内容", func(t *testing.T) {
		cache := loadedCache(t, 1, 2)
		err := cache.Load(ctx, func(context.Context) ([]database.Photo, error) {
			return nil, errors.New("offline")
		})
		assert.Error(t, err)
		assert.Equal(t, []uint{1, 2}, idsOf(cache.Items()))
	})

	t.Run("服务端成功后才修改本地", func(t *testing.T) {
		cache := loadedCache(t, 1, 2)

		err := cache.Apply(ctx, 2, func(context.Context) error { return errors.New("boom") },
			func(p *database.Photo) { p.Title = "changed" })
		assert.Error(t, err)
		assert.Equal(t, "p", cache.Items()[1].Title)

		err = cache.Apply(ctx, 2, func(context.Context) error { return nil },
			func(p *database.Photo) { p.Title = "changed" })
		require.NoError(t, err)
		assert.Equal(t, "changed", cache.Items()[1].Title)
		assert.Equal(t, "p", cache.Items()[0].Title)
	})

	t.Run("删除和插入", func(t *testing.T) {
		cache := loadedCache(t, 1, 2, 3)

		err := cache.Delete(ctx, 2, func(context.Context, uint) error { return errors.New("denied") })
		assert.Error(t, err)
		assert.Equal(t, 3, cache.Len())

		require.NoError(t, cache.Delete(ctx, 2, func(context.Context, uint) error { return nil }))
		assert.Equal(t, []uint{1, 3}, idsOf(cache.Items()))

		cache.Prepend(database.Photo{ID: 9})
		assert.Equal(t, []uint{9, 1, 3}, idsOf(cache.Items()))
	})

	t.Run("Items返回副本", func(t *testing.T) {
		cache := loadedCache(t, 1)
		items := cache.Items()
		items[0].Title = "mutated"
		assert.Equal(t, "p", cache.Items()[0].Title)
	})
}

func TestBulkDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("部分失败只移除成功的条目", func(t *testing.T) {
		cache := loadedCache(t, 1, 2, 3, 4, 5)
		result := cache.BulkDelete(ctx, []uint{1, 2, 3, 4}, 2, func(_ context.Context, id uint) error {
			if id%2 == 0 {
				return errors.New("locked")
			}
			return nil
		})

		assert.Equal(t, 2, result.Completed())
		assert.ElementsMatch(t, []uint{1, 3}, result.Deleted)
		assert.Len(t, result.Failed, 2)
		assert.Contains(t, result.Failed, uint(2))
		assert.Contains(t, result.Failed, uint(4))
		assert.Equal(t, []uint{2, 4, 5}, idsOf(cache.Items()))
	})

	t.Run("并发数受限", func(t *testing.T) {
		cache := loadedCache(t, 1, 2, 3, 4, 5, 6, 7, 8)
		var running, peak int32
		result := cache.BulkDelete(ctx, idsOf(cache.Items()), 3, func(context.Context, uint) error {
			n := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			atomic.AddInt32(&running, -1)
			return nil
		})

		assert.Equal(t, 8, result.Completed())
		assert.Empty(t, result.Failed)
		assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
		assert.Zero(t, cache.Len())
	})

	t.Run("空列表", func(t *testing.T) {
		cache := loadedCache(t, 1)
		result := cache.BulkDelete(ctx, nil, 0, func(context.Context, uint) error { return nil })
		assert.Zero(t, result.Completed())
		assert.Equal(t, 1, cache.Len())
	})
}

func TestReveal(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	t.Run("每次展开四个", func(t *testing.T) {
		r := NewReveal(items, 0)
		assert.Equal(t, []int{1, 2, 3, 4}, r.Visible())
		assert.True(t, r.HasMore())

		assert.Equal(t, []int{5, 6, 7, 8}, r.More())
		assert.Equal(t, []int{9, 10}, r.More())
		assert.False(t, r.HasMore())
		assert.Empty(t, r.More())
		assert.Len(t, r.Visible(), 10)
	})

	t.Run("条目不足一批", func(t *testing.T) {
		r := NewReveal(items[:2], 4)
		assert.Equal(t, []int{1, 2}, r.Visible())
		assert.False(t, r.HasMore())
	})
}
