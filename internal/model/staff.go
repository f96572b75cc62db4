package model

// StaffRole 员工角色
type StaffRole string

const (
	RoleManager     StaffRole = "manager"
	RoleScientist   StaffRole = "scientist"
	RoleFieldWorker StaffRole = "field_worker"
)

// Valid 校验员工角色
func (r StaffRole) Valid() bool {
	switch r {
	case RoleManager, RoleScientist, RoleFieldWorker:
		return true
	}
	return false
}

// StaffRoleOptions 员工角色选项
func StaffRoleOptions() []Option {
	return []Option{
		{Value: string(RoleManager), Label: "Manager"},
		{Value: string(RoleScientist), Label: "Scientist"},
		{Value: string(RoleFieldWorker), Label: "Field Worker"},
	}
}

// Staff 员工
type Staff struct {
	ID                string    `json:"id"                 yaml:"id"`
	Name              string    `json:"name"               yaml:"name"`
	Role              StaffRole `json:"role"               yaml:"role"`
	AssignedFields    []string  `json:"assigned_fields"    yaml:"assigned_fields"`    // → Field.ID
	AssignedEquipment []string  `json:"assigned_equipment" yaml:"assigned_equipment"` // → Equipment.ID
}

// GetID 记录 ID；nil 记录返回空串
func (s *Staff) GetID() string {
	if s == nil {
		return ""
	}
	return s.ID
}

func (s *Staff) Kind() Kind { return KindStaff }
func (*Staff) record()      {}

// Clone 深拷贝
func (s *Staff) Clone() *Staff {
	c := *s
	c.AssignedFields = cloneIDs(s.AssignedFields)
	c.AssignedEquipment = cloneIDs(s.AssignedEquipment)
	return &c
}
