package model

// EquipmentType 设备类型
type EquipmentType string

const (
	EquipmentIrrigation EquipmentType = "irrigation"
	EquipmentMonitoring EquipmentType = "monitoring"
	EquipmentProcessing EquipmentType = "processing"
)

// Valid 校验设备类型
func (t EquipmentType) Valid() bool {
	switch t {
	case EquipmentIrrigation, EquipmentMonitoring, EquipmentProcessing:
		return true
	}
	return false
}

// EquipmentTypeOptions 设备类型选项
func EquipmentTypeOptions() []Option {
	return []Option{
		{Value: string(EquipmentIrrigation), Label: "Irrigation"},
		{Value: string(EquipmentMonitoring), Label: "Monitoring"},
		{Value: string(EquipmentProcessing), Label: "Processing"},
	}
}

// Equipment 设备
type Equipment struct {
	ID         string        `json:"id"                    yaml:"id"`
	Name       string        `json:"name"                  yaml:"name"`
	Type       EquipmentType `json:"type"                  yaml:"type"`
	Status     AssetStatus   `json:"status"                yaml:"status"`
	AssignedTo string        `json:"assigned_to,omitempty" yaml:"assigned_to"` // → Staff.ID，可空
}

// GetID 记录 ID；nil 记录返回空串
func (e *Equipment) GetID() string {
	if e == nil {
		return ""
	}
	return e.ID
}

func (e *Equipment) Kind() Kind { return KindEquipment }
func (*Equipment) record()      {}

// Clone 拷贝
func (e *Equipment) Clone() *Equipment {
	c := *e
	return &c
}
