// Package catalog 六类记录的列、筛选、表单定义。
// 需要引用其他实体的定义（地块名称、员工名称）只拿只读句柄。
package catalog

import (
	"strconv"

	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/store"
)

// Definition 某类记录的完整页面定义
type Definition[T model.Record] struct {
	Kind          model.Kind
	Title         string // 单数名称，用于提示文案与导出 Sheet 名
	DefaultSort   query.SortState
	Columns       []query.Column[T]
	Filters       []query.FilterDef[T]
	Form          form.Binding[T]
	DeleteConfirm string
}

// FilterOptions 筛选栏选项（含动态选项）
func (d Definition[T]) FilterOptions() map[string][]model.Option {
	out := make(map[string][]model.Option, len(d.Filters))
	for _, f := range d.Filters {
		if f.Options != nil {
			out[f.Key] = f.Options()
		}
	}
	return out
}

// Catalog 全部定义
type Catalog struct {
	Fields    Definition[*model.Field]
	Crops     Definition[*model.Crop]
	Staff     Definition[*model.Staff]
	Vehicles  Definition[*model.Vehicle]
	Equipment Definition[*model.Equipment]
	Logs      Definition[*model.Log]
}

// New 基于存储句柄构建全部定义
func New(st *store.Store) *Catalog {
	return &Catalog{
		Fields:    FieldDefinition(st.Staff),
		Crops:     CropDefinition(st.Fields),
		Staff:     StaffDefinition(st.Fields),
		Vehicles:  VehicleDefinition(st.Fields),
		Equipment: EquipmentDefinition(st.Staff),
		Logs:      LogDefinition(st.Fields, st.Staff),
	}
}

// ── 共用辅助 ──

// nameOptions 以记录名称为标签的选项列表
func nameOptions[T model.Record](r store.Reader[T], name func(T) string) func() []model.Option {
	return func() []model.Option {
		records := r.List()
		opts := make([]model.Option, 0, len(records))
		for _, rec := range records {
			opts = append(opts, model.Option{Value: rec.GetID(), Label: name(rec)})
		}
		return opts
	}
}

// nameOf 按 ID 解析名称；引用已悬空时原样显示 ID
func nameOf[T model.Record](r store.Reader[T], name func(T) string, id string) string {
	if id == "" {
		return ""
	}
	if rec, ok := r.Get(id); ok {
		return name(rec)
	}
	return id
}

func namesOf[T model.Record](r store.Reader[T], name func(T) string, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, nameOf(r, name, id))
	}
	return out
}

func fieldName(f *model.Field) string { return f.Name }
func staffName(s *model.Staff) string { return s.Name }

// optionLabel 枚举值的展示文本
func optionLabel(opts []model.Option, v string) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
