package model

// VehicleType 车辆类型
type VehicleType string

const (
	VehicleTractor   VehicleType = "tractor"
	VehicleHarvester VehicleType = "harvester"
	VehicleTruck     VehicleType = "truck"
)

// Valid 校验车辆类型
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTractor, VehicleHarvester, VehicleTruck:
		return true
	}
	return false
}

// VehicleTypeOptions 车辆类型选项
func VehicleTypeOptions() []Option {
	return []Option{
		{Value: string(VehicleTractor), Label: "Tractor"},
		{Value: string(VehicleHarvester), Label: "Harvester"},
		{Value: string(VehicleTruck), Label: "Truck"},
	}
}

// Vehicle 车辆
type Vehicle struct {
	ID            string      `json:"id"                       yaml:"id"`
	Type          VehicleType `json:"type"                     yaml:"type"`
	Status        AssetStatus `json:"status"                   yaml:"status"`
	AssignedField string      `json:"assigned_field,omitempty" yaml:"assigned_field"` // → Field.ID，可空
}

// GetID 记录 ID；nil 记录返回空串
func (v *Vehicle) GetID() string {
	if v == nil {
		return ""
	}
	return v.ID
}

func (v *Vehicle) Kind() Kind { return KindVehicle }
func (*Vehicle) record()      {}

// Clone 拷贝
func (v *Vehicle) Clone() *Vehicle {
	c := *v
	return &c
}
