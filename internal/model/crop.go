package model

// CropStatus 作物状态
type CropStatus string

const (
	CropGrowing   CropStatus = "growing"
	CropHarvested CropStatus = "harvested"
	CropFailed    CropStatus = "failed"
)

// Valid 校验作物状态
func (s CropStatus) Valid() bool {
	switch s {
	case CropGrowing, CropHarvested, CropFailed:
		return true
	}
	return false
}

// CropStatusOptions 作物状态选项
func CropStatusOptions() []Option {
	return []Option{
		{Value: string(CropGrowing), Label: "Growing"},
		{Value: string(CropHarvested), Label: "Harvested"},
		{Value: string(CropFailed), Label: "Failed"},
	}
}

// Crop 作物。日期字段保持 YYYY-MM-DD 字符串，排序按字典序即按时间序。
type Crop struct {
	ID                  string     `json:"id"                    yaml:"id"`
	Name                string     `json:"name"                  yaml:"name"`
	FieldID             string     `json:"field_id"              yaml:"field_id"`
	PlantedDate         string     `json:"planted_date"          yaml:"planted_date"`
	ExpectedHarvestDate string     `json:"expected_harvest_date" yaml:"expected_harvest_date"`
	Status              CropStatus `json:"status"                yaml:"status"`
}

// GetID 记录 ID；nil 记录返回空串
func (c *Crop) GetID() string {
	if c == nil {
		return ""
	}
	return c.ID
}

func (c *Crop) Kind() Kind { return KindCrop }
func (*Crop) record()      {}

// Clone 拷贝
func (c *Crop) Clone() *Crop {
	cp := *c
	return &cp
}
