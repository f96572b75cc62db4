package query

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"farmdesk/internal/model"
)

// ErrUnknownFilter 筛选键未定义
var ErrUnknownFilter = errors.New("未知的筛选条件")

// Filters 筛选键 → 选中值；空串表示未设置（All）
type Filters map[string]string

// Active 仅保留已设置的键
func (f Filters) Active() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Merge 返回 f 被 override 覆盖后的副本；override 中的空值会清除对应键
func (f Filters) Merge(override Filters) Filters {
	out := maps.Clone(f)
	if out == nil {
		out = Filters{}
	}
	for k, v := range override {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// FilterDef 可筛选属性。
// Value 返回记录在该属性上的取值（多值属性任一命中即匹配）。
type FilterDef[T any] struct {
	Key     string
	Label   string
	Value   func(T) []string
	Options func() []model.Option
}

// One 单值属性取值的简写
func One(v string) []string { return []string{v} }

// Validate 检查 active 中的键都有定义
func Validate[T any](defs []FilterDef[T], active Filters) error {
	for k, v := range active {
		if v == "" {
			continue
		}
		if _, ok := findDef(defs, k); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownFilter, k)
		}
	}
	return nil
}

// Filter 返回满足全部已设置条件的记录（合取）。
// 未设置或未定义的键不构成约束。
func Filter[T any](records []T, defs []FilterDef[T], active Filters) []T {
	type constraint struct {
		def   FilterDef[T]
		value string
	}
	var cs []constraint
	for _, d := range defs {
		if v := active[d.Key]; v != "" {
			cs = append(cs, constraint{def: d, value: v})
		}
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		keep := true
		for _, c := range cs {
			if !slices.Contains(c.def.Value(r), c.value) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

func findDef[T any](defs []FilterDef[T], key string) (FilterDef[T], bool) {
	for _, d := range defs {
		if d.Key == key {
			return d, true
		}
	}
	return FilterDef[T]{}, false
}
