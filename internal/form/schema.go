// Package form 记录的新增/编辑表单：字段定义、输入校验与提交控制。
package form

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"farmdesk/internal/model"
)

// FieldType 输入控件类型
type FieldType string

const (
	Text        FieldType = "text"
	Number      FieldType = "number"
	Date        FieldType = "date"     // YYYY-MM-DD
	DateTime    FieldType = "datetime" // RFC3339 或 datetime-local
	Select      FieldType = "select"
	MultiSelect FieldType = "multiselect"
	TextArea    FieldType = "textarea"
)

// DateLayout 日期输入格式
const DateLayout = "2006-01-02"

// datetime-local 控件提交的格式
const localDateTimeLayout = "2006-01-02T15:04"

// FieldDef 表单字段
type FieldDef struct {
	Name     string         `json:"name"`
	Label    string         `json:"label"`
	Type     FieldType      `json:"type"`
	Required bool           `json:"required"`
	Positive bool           `json:"positive,omitempty"` // 仅 Number
	Options  []model.Option `json:"options,omitempty"`  // Select / MultiSelect
	Default  string         `json:"default,omitempty"`
}

// Schema 有序字段列表
type Schema []FieldDef

// ErrValidation 表单校验失败
var ErrValidation = errors.New("表单校验失败")

// ValidationError 字段级校验错误，键为字段名
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+": "+e.Fields[n])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Is 使 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// 校验失败原因
const (
	ReasonRequired = "required"
	ReasonNumber   = "must be a number"
	ReasonPositive = "must be positive"
	ReasonDate     = "must be a date (YYYY-MM-DD)"
	ReasonDateTime = "must be a date-time"
	ReasonOption   = "invalid option"
)

// Validate 按字段定义校验输入
func (s Schema) Validate(v Values) error {
	bad := make(map[string]string)
	for _, f := range s {
		values := v.All(f.Name)
		if len(values) == 0 {
			if f.Required {
				bad[f.Name] = ReasonRequired
			}
			continue
		}
		if reason := f.check(values); reason != "" {
			bad[f.Name] = reason
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

func (f FieldDef) check(values []string) string {
	switch f.Type {
	case Number:
		n, err := strconv.ParseFloat(values[0], 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return ReasonNumber
		}
		if f.Positive && n <= 0 {
			return ReasonPositive
		}
	case Date:
		if _, err := time.Parse(DateLayout, values[0]); err != nil {
			return ReasonDate
		}
	case DateTime:
		if _, err := ParseDateTime(values[0]); err != nil {
			return ReasonDateTime
		}
	case Select:
		if !hasOption(f.Options, values[0]) {
			return ReasonOption
		}
	case MultiSelect:
		for _, val := range values {
			if !hasOption(f.Options, val) {
				return ReasonOption
			}
		}
	}
	return ""
}

// ParseDateTime 接受 RFC3339 与 datetime-local 两种格式
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(localDateTimeLayout, s)
}

func hasOption(opts []model.Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Defaults 新建表单的初始值
func (s Schema) Defaults() Values {
	v := Values{}
	for _, f := range s {
		if f.Default != "" {
			v.Set(f.Name, f.Default)
		}
	}
	return v
}
