package model

// FieldStatus 地块状态
type FieldStatus string

const (
	FieldActive   FieldStatus = "active"
	FieldInactive FieldStatus = "inactive"
)

// Valid 校验地块状态
func (s FieldStatus) Valid() bool {
	return s == FieldActive || s == FieldInactive
}

// FieldStatusOptions 地块状态选项
func FieldStatusOptions() []Option {
	return []Option{
		{Value: string(FieldActive), Label: "Active"},
		{Value: string(FieldInactive), Label: "Inactive"},
	}
}

// Field 地块
type Field struct {
	ID            string      `json:"id"             yaml:"id"`
	Name          string      `json:"name"           yaml:"name"`
	Location      string      `json:"location"       yaml:"location"`
	Size          float64     `json:"size"           yaml:"size"` // 英亩，正数
	Status        FieldStatus `json:"status"         yaml:"status"`
	AssignedStaff []string    `json:"assigned_staff" yaml:"assigned_staff"` // → Staff.ID
	Crops         []string    `json:"crops"          yaml:"crops"`          // → Crop.ID
}

// GetID 记录 ID；nil 记录返回空串
func (f *Field) GetID() string {
	if f == nil {
		return ""
	}
	return f.ID
}

func (f *Field) Kind() Kind { return KindField }
func (*Field) record()      {}

// Clone 深拷贝
func (f *Field) Clone() *Field {
	c := *f
	c.AssignedStaff = cloneIDs(f.AssignedStaff)
	c.Crops = cloneIDs(f.Crops)
	return &c
}
