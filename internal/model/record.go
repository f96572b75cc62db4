package model

// Kind 实体类别，同时作为 API 路径段与状态快照的键
type Kind string

const (
	KindField     Kind = "fields"
	KindCrop      Kind = "crops"
	KindStaff     Kind = "staff"
	KindVehicle   Kind = "vehicles"
	KindEquipment Kind = "equipment"
	KindLog       Kind = "logs"
)

// Kinds 按导航顺序列出全部实体类别
var Kinds = []Kind{KindField, KindCrop, KindStaff, KindVehicle, KindEquipment, KindLog}

// Record 六类记录的封闭联合类型。
// 仅本包内的类型可以实现（record 为未导出方法）。
type Record interface {
	GetID() string
	Kind() Kind
	record()
}

// Option 枚举选项（筛选栏、表单下拉共用）
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AssetStatus 车辆与设备共用的状态
type AssetStatus string

const (
	AssetAvailable   AssetStatus = "available"
	AssetInUse       AssetStatus = "in-use"
	AssetMaintenance AssetStatus = "maintenance"
)

// Valid 校验状态取值
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetAvailable, AssetInUse, AssetMaintenance:
		return true
	}
	return false
}

// AssetStatusOptions 车辆/设备状态选项
func AssetStatusOptions() []Option {
	return []Option{
		{Value: string(AssetAvailable), Label: "Available"},
		{Value: string(AssetInUse), Label: "In Use"},
		{Value: string(AssetMaintenance), Label: "Maintenance"},
	}
}

// cloneIDs 复制引用列表，避免新旧记录共享底层数组
func cloneIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
