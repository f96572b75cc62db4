// Package store 内存实体存储。
// 每类实体一个 Slice，Store 为显式注入的状态容器（不存在全局单例）。
package store

import (
	"maps"
	"sync"

	"farmdesk/internal/model"
)

// Reader 只读能力：表格渲染、引用查询使用
type Reader[T model.Record] interface {
	List() []T
	Get(id string) (T, bool)
	Len() int
}

// Writer 写入能力：表单控制器使用
type Writer[T model.Record] interface {
	Add(r T)
	Update(r T) bool
}

// Observer 记录数量变化回调（指标上报）
type Observer interface {
	RecordsChanged(kind model.Kind, count int)
}

// State 单个分区的状态形态：{records, loading, error, filters}
type State[T model.Record] struct {
	Records []T               `json:"records"`
	Loading bool              `json:"loading"`
	Error   *string           `json:"error"`
	Filters map[string]string `json:"filters"`
}

// Slice 单类实体的存储分区。
// 所有方法对缺失 ID 都是静默的，不返回错误。
type Slice[T model.Record] struct {
	kind model.Kind

	mu       sync.RWMutex
	records  []T
	loading  bool
	err      *string
	filters  map[string]string
	observer Observer
}

// NewSlice 创建空分区
func NewSlice[T model.Record](kind model.Kind) *Slice[T] {
	return &Slice[T]{kind: kind, filters: make(map[string]string)}
}

// Kind 分区对应的实体类别
func (s *Slice[T]) Kind() model.Kind { return s.kind }

// Set 整体替换集合（初始加载、管理员导入）
func (s *Slice[T]) Set(records []T) {
	s.mu.Lock()
	s.records = append(make([]T, 0, len(records)), records...)
	n := len(s.records)
	s.mu.Unlock()
	s.notify(n)
}

// Add 追加记录。ID 唯一性由调用方保证，这里不做检查。
func (s *Slice[T]) Add(r T) {
	s.mu.Lock()
	s.records = append(s.records, r)
	n := len(s.records)
	s.mu.Unlock()
	s.notify(n)
}

// Update 替换第一条 ID 匹配的记录；不存在时什么也不做。
// 返回值仅表示是否发生了替换。
func (s *Slice[T]) Update(r T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].GetID() == r.GetID() {
			s.records[i] = r
			return true
		}
	}
	return false
}

// Delete 移除 ID 匹配的记录；不存在时什么也不做。
func (s *Slice[T]) Delete(id string) bool {
	s.mu.Lock()
	next := make([]T, 0, len(s.records))
	for _, r := range s.records {
		if r.GetID() != id {
			next = append(next, r)
		}
	}
	removed := len(next) != len(s.records)
	if removed {
		s.records = next
	}
	n := len(s.records)
	s.mu.Unlock()

	if removed {
		s.notify(n)
	}
	return removed
}

// List 按插入顺序返回记录副本
func (s *Slice[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Get 按 ID 查找
func (s *Slice[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.GetID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Len 记录数
func (s *Slice[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// ── 状态字段 ──

// SetLoading 设置加载标记
func (s *Slice[T]) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// SetError 设置错误信息，传空串清除
func (s *Slice[T]) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg == "" {
		s.err = nil
		return
	}
	s.err = &msg
}

// SetFilters 合并筛选条件；值为空串的键被清除（恢复为 All）
func (s *Slice[T]) SetFilters(partial map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range partial {
		if v == "" {
			delete(s.filters, k)
			continue
		}
		s.filters[k] = v
	}
}

// Filters 当前保存的筛选条件副本
func (s *Slice[T]) Filters() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.filters)
}

// State 当前状态快照
func (s *Slice[T]) State() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State[T]{
		Records: make([]T, len(s.records)),
		Loading: s.loading,
		Filters: maps.Clone(s.filters),
	}
	copy(st.Records, s.records)
	if s.err != nil {
		msg := *s.err
		st.Error = &msg
	}
	return st
}

func (s *Slice[T]) setObserver(o Observer) {
	s.mu.Lock()
	s.observer = o
	n := len(s.records)
	s.mu.Unlock()
	if o != nil {
		o.RecordsChanged(s.kind, n)
	}
}

func (s *Slice[T]) notify(n int) {
	s.mu.RLock()
	o := s.observer
	s.mu.RUnlock()
	if o != nil {
		o.RecordsChanged(s.kind, n)
	}
}
