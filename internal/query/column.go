// Package query 列表视图的筛选与排序引擎。
// 所有函数均为纯函数，不修改输入集合。
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Column 列定义，按记录类型参数化。
//
// Value 返回排序键，取值类型限于 string、float64、int、[]string；
// Format 为空时按 Value 的自然文本展示。
type Column[T any] struct {
	Key      string
	Label    string
	Sortable bool
	Value    func(T) any
	Format   func(T) string
}

// Text 单元格展示文本
func (c Column[T]) Text(r T) string {
	if c.Format != nil {
		return c.Format(r)
	}
	return FormatValue(c.Value(r))
}

// FormatValue 排序键的默认文本形式
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case []string:
		return strings.Join(x, ", ")
	default:
		return fmt.Sprint(x)
	}
}

// FindColumn 按键查找列
func FindColumn[T any](cols []Column[T], key string) (Column[T], bool) {
	for _, c := range cols {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}
