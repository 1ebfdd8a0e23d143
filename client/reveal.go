package client

// DefaultRevealStep 前台每次展开的条目数
const DefaultRevealStep = 4

// Reveal 渐进式展示已加载的列表
type Reveal[T any] struct {
	items []T
	shown int
	step  int
}

// NewReveal 创建展示器，初始显示 step 个条目
func NewReveal[T any](items []T, step int) *Reveal[T] {
	if step <= 0 {
		step = DefaultRevealStep
	}
	r := &Reveal[T]{items: items, step: step}
	r.shown = min(step, len(items))
	return r
}

// Visible 当前可见的条目
func (r *Reveal[T]) Visible() []T {
	return r.items[:r.shown]
}

// More 再展开一批，返回新增的条目
func (r *Reveal[T]) More() []T {
	start := r.shown
	r.shown = min(r.shown+r.step, len(r.items))
	return r.items[start:r.shown]
}

// HasMore 是否还有未展示的条目
func (r *Reveal[T]) HasMore() bool {
	return r.shown < len(r.items)
}
