package client

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultBulkConcurrency 批量删除的默认并发数
const DefaultBulkConcurrency = 8

// ListCache 管理后台的本地列表
// 服务端写操作成功后才修改本地副本，失败时本地保持不变
type ListCache[T any] struct {
	mu    sync.RWMutex
	items []T
	key   func(T) uint
}

// NewListCache 创建列表缓存，key 返回条目的ID
func NewListCache[T any](key func(T) uint) *ListCache[T] {
	return &ListCache[T]{key: key}
}

// Load 用 fetch 的结果替换本地内容
func (l *ListCache[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	items, err := fetch(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.items = append([]T(nil), items...)
	l.mu.Unlock()
	return nil
}

// Items 返回本地内容的副本
func (l *ListCache[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]T(nil), l.items...)
}

// Len 条目数
func (l *ListCache[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Prepend 插入到列表头部，与服务端按创建时间倒序一致
func (l *ListCache[T]) Prepend(item T) {
	l.mu.Lock()
	l.items = append([]T{item}, l.items...)
	l.mu.Unlock()
}

// Apply 执行服务端调用，成功后用 patch 修改对应条目
func (l *ListCache[T]) Apply(ctx context.Context, id uint, call func(context.Context) error, patch func(*T)) error {
	if err := call(ctx); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.key(l.items[i]) == id {
			patch(&l.items[i])
			break
		}
	}
	return nil
}

// Delete 执行服务端删除，成功后移除本地条目
func (l *ListCache[T]) Delete(ctx context.Context, id uint, call func(context.Context, uint) error) error {
	if err := call(ctx, id); err != nil {
		return err
	}
	l.Remove(id)
	return nil
}

// Remove 移除本地条目
func (l *ListCache[T]) Remove(ids ...uint) {
	drop := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.items[:0]
	for _, item := range l.items {
		if _, ok := drop[l.key(item)]; !ok {
			kept = append(kept, item)
		}
	}
	for i := len(kept); i < len(l.items); i++ {
		var zero T
		l.items[i] = zero
	}
	l.items = kept
}

// BulkResult 批量删除结果
type BulkResult struct {
	Deleted []uint
	Failed  map[uint]error
}

// Completed 成功删除的数量
func (r BulkResult) Completed() int {
	return len(r.Deleted)
}

// BulkDelete 并发删除，单个失败不影响其他条目
// 只有删除成功的条目会从本地移除
func (l *ListCache[T]) BulkDelete(ctx context.Context, ids []uint, concurrency int, call func(context.Context, uint) error) BulkResult {
	if concurrency <= 0 {
		concurrency = DefaultBulkConcurrency
	}

	var (
		mu     sync.Mutex
		result = BulkResult{Failed: map[uint]error{}}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			err := call(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[id] = err
			} else {
				result.Deleted = append(result.Deleted, id)
			}
			return nil
		})
	}
	_ = g.Wait()

	l.Remove(result.Deleted...)
	return result
}
