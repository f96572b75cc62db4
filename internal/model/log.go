package model

// LogType 日志类型
type LogType string

const (
	LogInspection  LogType = "inspection"
	LogMaintenance LogType = "maintenance"
	LogHarvest     LogType = "harvest"
)

// Valid 校验日志类型
func (t LogType) Valid() bool {
	switch t {
	case LogInspection, LogMaintenance, LogHarvest:
		return true
	}
	return false
}

// LogTypeOptions 日志类型选项
func LogTypeOptions() []Option {
	return []Option{
		{Value: string(LogInspection), Label: "Inspection"},
		{Value: string(LogMaintenance), Label: "Maintenance"},
		{Value: string(LogHarvest), Label: "Harvest"},
	}
}

// Log 田间作业日志
type Log struct {
	ID          string  `json:"id"          yaml:"id"`
	FieldID     string  `json:"field_id"    yaml:"field_id"`
	Timestamp   string  `json:"timestamp"   yaml:"timestamp"` // RFC3339
	Type        LogType `json:"type"        yaml:"type"`
	Description string  `json:"description" yaml:"description"`
	CreatedBy   string  `json:"created_by"  yaml:"created_by"` // → Staff.ID
}

// GetID 记录 ID；nil 记录返回空串
func (l *Log) GetID() string {
	if l == nil {
		return ""
	}
	return l.ID
}

func (l *Log) Kind() Kind { return KindLog }
func (*Log) record()      {}

// Clone 拷贝
func (l *Log) Clone() *Log {
	c := *l
	return &c
}
