package form

import (
	"strconv"
	"strings"
)

// Values 表单提交值，键为字段名；多选字段有多个值
type Values map[string][]string

// Set 设置单值
func (v Values) Set(name, value string) {
	v[name] = []string{value}
}

// SetAll 设置多值
func (v Values) SetAll(name string, values []string) {
	v[name] = append([]string(nil), values...)
}

// Get 首个非空值（已去除首尾空白）
func (v Values) Get(name string) string {
	all := v.All(name)
	if len(all) == 0 {
		return ""
	}
	return all[0]
}

// All 全部非空值（已去除首尾空白）
func (v Values) All(name string) []string {
	var out []string
	for _, s := range v[name] {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Float 数值字段，调用前应已通过 Schema.Validate
func (v Values) Float(name string) float64 {
	n, _ := strconv.ParseFloat(v.Get(name), 64)
	return n
}

// ValuesFromJSON 将 JSON 对象转换为表单值。
// 数字按最短十进制形式转为字符串，数组展开为多值。
// null 与空数组保留为空值，编辑时用于清空字段。
func ValuesFromJSON(m map[string]any) Values {
	v := make(Values, len(m))
	for k, raw := range m {
		switch x := raw.(type) {
		case nil:
			v[k] = []string{}
		case []any:
			v[k] = make([]string, 0, len(x))
			for _, item := range x {
				if s, ok := scalar(item); ok {
					v[k] = append(v[k], s)
				}
			}
		default:
			if s, ok := scalar(x); ok {
				v[k] = []string{s}
			}
		}
	}
	return v
}

func scalar(x any) (string, bool) {
	switch t := x.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}
