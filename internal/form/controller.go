package form

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"farmdesk/internal/model"
	"farmdesk/internal/store"
	pkgerrors "farmdesk/pkg/errors"
)

var (
	ErrFormClosed = errors.New("表单未打开")
	ErrFormOpen   = errors.New("表单已打开")
	ErrRecordGone = fmt.Errorf("编辑的记录已不存在: %w", pkgerrors.ErrNotFound)
)

// State 表单状态
type State int

const (
	Closed State = iota
	Creating
	Editing
)

func (s State) String() string {
	switch s {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	}
	return "closed"
}

// IDGenerator 新记录 ID 生成器
type IDGenerator func() string

// NewUUID 默认 ID 生成器（UUID v4）
func NewUUID() string { return uuid.NewString() }

// Binding 某类记录与表单之间的映射
type Binding[T model.Record] struct {
	// Schema 每次打开时重新计算，下拉选项可以依赖当前数据
	Schema func() Schema
	// Build 由表单值组装记录。新建时 base 为零值，编辑时为原记录（不得修改）。
	Build func(base T, id string, v Values) T
	// Extract 记录当前值，用于编辑表单回填
	Extract func(T) Values
}

// Controller 单个表单实例。
//
// 状态机：Closed → Creating | Editing(record)；Creating/Editing → Closed（取消或提交成功）。
// 非并发安全，每个请求使用独立实例。
type Controller[T model.Record] struct {
	binding Binding[T]
	writer  store.Writer[T]
	newID   IDGenerator

	state   State
	editing T
}

// NewController 创建处于 Closed 状态的表单
func NewController[T model.Record](binding Binding[T], writer store.Writer[T], newID IDGenerator) *Controller[T] {
	if newID == nil {
		newID = NewUUID
	}
	return &Controller[T]{binding: binding, writer: writer, newID: newID}
}

// State 当前状态
func (c *Controller[T]) State() State { return c.state }

// Editing 正在编辑的记录
func (c *Controller[T]) Editing() (T, bool) {
	return c.editing, c.state == Editing
}

// Open 打开新建表单
func (c *Controller[T]) Open() error {
	if c.state != Closed {
		return ErrFormOpen
	}
	c.state = Creating
	return nil
}

// OpenEdit 打开编辑表单
func (c *Controller[T]) OpenEdit(r T) error {
	if c.state != Closed {
		return ErrFormOpen
	}
	c.state = Editing
	c.editing = r
	return nil
}

// Cancel 关闭表单，丢弃输入
func (c *Controller[T]) Cancel() {
	c.close()
}

// Schema 当前字段定义
func (c *Controller[T]) Schema() Schema {
	return c.binding.Schema()
}

// Prefill 表单初始值：编辑时为记录当前值，新建时为字段默认值
func (c *Controller[T]) Prefill() Values {
	if c.state == Editing {
		return c.binding.Extract(c.editing)
	}
	return c.Schema().Defaults()
}

// Submit 校验并提交。
// 校验失败时表单保持打开；成功后写入存储并关闭。
func (c *Controller[T]) Submit(v Values) (T, error) {
	var zero T
	if c.state == Closed {
		return zero, ErrFormClosed
	}

	if err := c.Schema().Validate(v); err != nil {
		return zero, err
	}

	var (
		id   string
		base T
	)
	if c.state == Editing {
		id = c.editing.GetID()
		base = c.editing
	} else {
		id = c.newID()
	}

	rec := c.binding.Build(base, id, v)

	editing := c.state == Editing
	c.close()

	if editing {
		if !c.writer.Update(rec) {
			return zero, ErrRecordGone
		}
		return rec, nil
	}
	c.writer.Add(rec)
	return rec, nil
}

func (c *Controller[T]) close() {
	var zero T
	c.state = Closed
	c.editing = zero
}
