package query

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrUnknownSortKey = errors.New("未知的排序字段")
	ErrInvalidSort    = errors.New("排序参数格式无效")
)

// Direction 排序方向
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState 当前排序列与方向
type SortState struct {
	Key string    `json:"key"`
	Dir Direction `json:"dir"`
}

// Toggle 点击同一列翻转方向，点击新列重置为升序
func (s SortState) Toggle(key string) SortState {
	if s.Key == key {
		if s.Dir == Asc {
			return SortState{Key: key, Dir: Desc}
		}
		return SortState{Key: key, Dir: Asc}
	}
	return SortState{Key: key, Dir: Asc}
}

// String 序列化为 key:dir
func (s SortState) String() string {
	if s.Key == "" {
		return ""
	}
	return s.Key + ":" + string(s.Dir)
}

// ParseSort 解析 "key" 或 "key:asc|desc"
func ParseSort(raw string) (SortState, error) {
	if raw == "" {
		return SortState{}, nil
	}
	key, dir, found := strings.Cut(raw, ":")
	if key == "" {
		return SortState{}, fmt.Errorf("%w: %q", ErrInvalidSort, raw)
	}
	if !found {
		return SortState{Key: key, Dir: Asc}, nil
	}
	switch Direction(dir) {
	case Asc, Desc:
		return SortState{Key: key, Dir: Direction(dir)}, nil
	}
	return SortState{}, fmt.Errorf("%w: %q", ErrInvalidSort, raw)
}

// ResolveColumn 校验排序字段存在且可排序
func ResolveColumn[T any](cols []Column[T], key string) (Column[T], error) {
	col, ok := FindColumn(cols, key)
	if !ok || !col.Sortable {
		return Column[T]{}, fmt.Errorf("%w: %s", ErrUnknownSortKey, key)
	}
	return col, nil
}

// Sort 稳定排序，返回新切片。降序只翻转比较结果，相等元素仍保持输入顺序。
func Sort[T any](records []T, col Column[T], dir Direction) []T {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b T) int {
		c := Compare(col.Value(a), col.Value(b))
		if dir == Desc {
			return -c
		}
		return c
	})
	return out
}

// Compare 自然序比较：字符串按字典序，数值按大小，字符串列表按拼接文本。
// 类型不一致时按文本形式比较。
func Compare(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	}
	return strings.Compare(FormatValue(a), FormatValue(b))
}
