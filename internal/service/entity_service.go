package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"farmdesk/internal/catalog"
	"farmdesk/internal/dto"
	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/store"
	"farmdesk/internal/table"
	pkgerrors "farmdesk/pkg/errors"
)

// ── 记录模块业务错误 ──

var (
	ErrRecordNotFound     = pkgerrors.ErrNotFound
	ErrDeleteNotConfirmed = errors.New("删除操作需要确认")
	ErrInvalidRecords     = errors.New("导入数据无效")
)

// EntityService 单类记录的业务接口（六类记录共用一套实现）
type EntityService[T model.Record] interface {
	Kind() model.Kind
	// List 列表页：保存的筛选条件叠加查询参数 → 筛选 → 排序 → 渲染
	List(ctx context.Context, req *dto.ListRequest) (*dto.ListResponse, error)
	Get(ctx context.Context, id string) (T, error)
	// FormFor 打开表单；id 为空时为新建表单
	FormFor(ctx context.Context, id string) (*dto.FormResponse, error)
	Create(ctx context.Context, v form.Values) (T, error)
	Update(ctx context.Context, id string, v form.Values) (T, error)
	Delete(ctx context.Context, id string, confirmed bool) error
	// Replace 整体替换集合
	Replace(ctx context.Context, records []T) error
	// SetFilters 合并保存的筛选条件，返回合并后的结果
	SetFilters(ctx context.Context, partial query.Filters) (query.Filters, error)
	// Export 按列表页当前视图导出 Excel
	Export(ctx context.Context, req *dto.ListRequest) (*bytes.Buffer, string, error)
}

type entityService[T model.Record] struct {
	def      catalog.Definition[T]
	slice    *store.Slice[T]
	refs     *store.Store
	newID    form.IDGenerator
	basePath string
	logger   *zap.Logger
}

// NewEntityService 创建某类记录的 EntityService。
// basePath 用于生成行级操作链接，如 /api/v1。
func NewEntityService[T model.Record](
	def catalog.Definition[T],
	slice *store.Slice[T],
	refs *store.Store,
	newID form.IDGenerator,
	basePath string,
	logger *zap.Logger,
) EntityService[T] {
	return &entityService[T]{
		def:      def,
		slice:    slice,
		refs:     refs,
		newID:    newID,
		basePath: basePath,
		logger:   logger.With(zap.String("kind", string(def.Kind))),
	}
}

func (s *entityService[T]) Kind() model.Kind { return s.def.Kind }

// ────── List ──────

func (s *entityService[T]) List(_ context.Context, req *dto.ListRequest) (*dto.ListResponse, error) {
	view, active, err := s.render(req, true)
	if err != nil {
		return nil, err
	}

	state := s.slice.State()
	return &dto.ListResponse{
		Kind:      s.def.Kind,
		Title:     s.def.Title,
		Loading:   state.Loading,
		Error:     state.Error,
		FilterBar: s.filterBar(active),
		Table:     view,
		Total:     len(state.Records),
	}, nil
}

// render 执行 筛选 → 排序 → 渲染，返回视图与生效的筛选条件
func (s *entityService[T]) render(req *dto.ListRequest, withActions bool) (table.View, query.Filters, error) {
	if req == nil {
		req = &dto.ListRequest{}
	}

	active := query.Filters(s.slice.Filters()).Merge(req.Filters)
	if err := query.Validate(s.def.Filters, active); err != nil {
		return table.View{}, nil, err
	}

	sortState := s.def.DefaultSort
	if req.Sort != "" {
		parsed, err := query.ParseSort(req.Sort)
		if err != nil {
			return table.View{}, nil, err
		}
		sortState = parsed
	}

	records := query.Filter(s.slice.List(), s.def.Filters, active)
	if sortState.Key != "" {
		col, err := query.ResolveColumn(s.def.Columns, sortState.Key)
		if err != nil {
			return table.View{}, nil, err
		}
		records = query.Sort(records, col, sortState.Dir)
	}

	p := table.Presenter[T]{Columns: s.def.Columns}
	if withActions {
		p.EditURL = func(id string) string { return s.recordURL(id) + "/form" }
		p.DeleteURL = func(id string) string { return s.recordURL(id) + "?confirm=true" }
		p.DeleteConfirm = s.def.DeleteConfirm
	}
	return p.Render(records, sortState), active, nil
}

func (s *entityService[T]) filterBar(active query.Filters) []dto.FilterBar {
	bar := make([]dto.FilterBar, 0, len(s.def.Filters))
	for _, f := range s.def.Filters {
		item := dto.FilterBar{Key: f.Key, Label: f.Label, Value: active[f.Key]}
		if f.Options != nil {
			item.Options = f.Options()
		}
		bar = append(bar, item)
	}
	return bar
}

func (s *entityService[T]) recordURL(id string) string {
	return fmt.Sprintf("%s/%s/%s", s.basePath, s.def.Kind, id)
}

// ────── Get ──────

func (s *entityService[T]) Get(_ context.Context, id string) (T, error) {
	rec, ok := s.slice.Get(id)
	if !ok {
		var zero T
		return zero, ErrRecordNotFound
	}
	return rec, nil
}

// ────── Form ──────

func (s *entityService[T]) FormFor(ctx context.Context, id string) (*dto.FormResponse, error) {
	ctrl := s.controller()
	if id == "" {
		if err := ctrl.Open(); err != nil {
			return nil, err
		}
	} else {
		rec, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := ctrl.OpenEdit(rec); err != nil {
			return nil, err
		}
	}

	return &dto.FormResponse{
		Kind:   s.def.Kind,
		Mode:   ctrl.State().String(),
		ID:     id,
		Title:  s.def.Title,
		Schema: ctrl.Schema(),
		Values: ctrl.Prefill(),
	}, nil
}

func (s *entityService[T]) controller() *form.Controller[T] {
	return form.NewController(s.def.Form, s.slice, s.newID)
}

// ────── Create ──────

func (s *entityService[T]) Create(_ context.Context, v form.Values) (T, error) {
	var zero T
	ctrl := s.controller()
	if err := ctrl.Open(); err != nil {
		return zero, err
	}

	// 未提交的字段取表单默认值
	rec, err := ctrl.Submit(overlay(ctrl.Prefill(), v))
	if err != nil {
		return zero, err
	}

	s.logger.Info("记录已创建", zap.String("id", rec.GetID()))
	return rec, nil
}

// ────── Update ──────

func (s *entityService[T]) Update(ctx context.Context, id string, v form.Values) (T, error) {
	var zero T
	current, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	ctrl := s.controller()
	if err := ctrl.OpenEdit(current); err != nil {
		return zero, err
	}

	// 未提交的字段保留记录当前值
	rec, err := ctrl.Submit(overlay(ctrl.Prefill(), v))
	if err != nil {
		if errors.Is(err, form.ErrRecordGone) {
			return zero, ErrRecordNotFound
		}
		return zero, err
	}

	s.logger.Info("记录已更新", zap.String("id", id))
	return rec, nil
}

// overlay 以 submitted 覆盖 base 中的同名字段
func overlay(base, submitted form.Values) form.Values {
	out := make(form.Values, len(base)+len(submitted))
	for k, vs := range base {
		out[k] = vs
	}
	for k, vs := range submitted {
		out[k] = vs
	}
	return out
}

// ────── Delete ──────

func (s *entityService[T]) Delete(_ context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}

	refs := s.refs.ReferencesTo(s.def.Kind, id)
	if !s.slice.Delete(id) {
		return ErrRecordNotFound
	}

	// 引用不级联删除，仅记录告警，由 /integrity 报告
	if len(refs) > 0 {
		s.logger.Warn("删除后存在悬空引用",
			zap.String("id", id),
			zap.Int("dangling", len(refs)),
		)
	} else {
		s.logger.Info("记录已删除", zap.String("id", id))
	}
	return nil
}

// ────── Replace ──────

func (s *entityService[T]) Replace(_ context.Context, records []T) error {
	s.slice.SetLoading(true)
	defer s.slice.SetLoading(false)

	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		id := r.GetID()
		if id == "" {
			err := fmt.Errorf("%w: 第 %d 条记录缺少 id", ErrInvalidRecords, i)
			s.slice.SetError(err.Error())
			return err
		}
		if _, dup := seen[id]; dup {
			err := fmt.Errorf("%w: id 重复 %s", ErrInvalidRecords, id)
			s.slice.SetError(err.Error())
			return err
		}
		seen[id] = struct{}{}
	}

	s.slice.Set(records)
	s.slice.SetError("")
	s.logger.Info("集合已替换", zap.Int("count", len(records)))
	return nil
}

// ────── Filters ──────

func (s *entityService[T]) SetFilters(_ context.Context, partial query.Filters) (query.Filters, error) {
	if err := query.Validate(s.def.Filters, partial); err != nil {
		return nil, err
	}
	s.slice.SetFilters(partial)
	return s.slice.Filters(), nil
}

// ────── Export ──────

func (s *entityService[T]) Export(_ context.Context, req *dto.ListRequest) (*bytes.Buffer, string, error) {
	view, _, err := s.render(req, false)
	if err != nil {
		return nil, "", err
	}

	buf, err := table.WriteXLSX(view, string(s.def.Kind))
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.xlsx", s.def.Kind, time.Now().Format("20060102"))
	return buf, filename, nil
}
