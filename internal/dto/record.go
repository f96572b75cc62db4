package dto

import (
	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/store"
	"farmdesk/internal/table"
)

// ── 记录列表 / 表单 DTO ──

// ListRequest 列表查询：sort 为 key[:asc|desc]，其余查询参数均视为筛选条件
type ListRequest struct {
	Sort    string
	Filters query.Filters
}

// FilterBar 筛选栏单项
type FilterBar struct {
	Key     string         `json:"key"`
	Label   string         `json:"label"`
	Options []model.Option `json:"options"`
	Value   string         `json:"value"` // 空串表示 All
}

// ListResponse 列表页
type ListResponse struct {
	Kind      model.Kind  `json:"kind"`
	Title     string      `json:"title"`
	Loading   bool        `json:"loading"`
	Error     *string     `json:"error"`
	FilterBar []FilterBar `json:"filter_bar"`
	Table     table.View  `json:"table"`
	Total     int         `json:"total"` // 筛选前记录数
}

// FormResponse 新建/编辑表单
type FormResponse struct {
	Kind   model.Kind  `json:"kind"`
	Mode   string      `json:"mode"` // creating | editing
	ID     string      `json:"id,omitempty"`
	Title  string      `json:"title"`
	Schema form.Schema `json:"schema"`
	Values form.Values `json:"values"`
}

// IntegrityResponse 悬空引用报告
type IntegrityResponse struct {
	Count    int                 `json:"count"`
	Dangling []store.DanglingRef `json:"dangling"`
}

// DashboardStat 仪表盘统计卡片
type DashboardStat struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Value int    `json:"value"`
}

// DashboardAlert 系统告警
type DashboardAlert struct {
	Kind    model.Kind `json:"kind"`
	ID      string     `json:"id,omitempty"`
	Message string     `json:"message"`
}

// DashboardResponse 仪表盘
type DashboardResponse struct {
	Stats            []DashboardStat  `json:"stats"`
	RecentActivities []*model.Log     `json:"recent_activities"`
	Alerts           []DashboardAlert `json:"alerts"`
}
