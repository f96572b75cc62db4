package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"farmdesk/internal/dto"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/store"
)

// recentActivityLimit 仪表盘展示的最近日志条数
const recentActivityLimit = 5

// StateService 全局状态查询接口
type StateService interface {
	// Snapshot 实体类别 → {records, loading, error, filters}
	Snapshot(ctx context.Context) map[model.Kind]any
	// Integrity 当前所有悬空引用
	Integrity(ctx context.Context) *dto.IntegrityResponse
	Dashboard(ctx context.Context) *dto.DashboardResponse
}

type stateService struct {
	st     *store.Store
	logger *zap.Logger
}

// NewStateService 创建 StateService 实例
func NewStateService(st *store.Store, logger *zap.Logger) StateService {
	return &stateService{st: st, logger: logger}
}

func (s *stateService) Snapshot(_ context.Context) map[model.Kind]any {
	return s.st.Snapshot()
}

func (s *stateService) Integrity(_ context.Context) *dto.IntegrityResponse {
	refs := s.st.DanglingReferences()
	if refs == nil {
		refs = []store.DanglingRef{}
	}
	s.logger.Debug("悬空引用检查完成", zap.Int("count", len(refs)))
	return &dto.IntegrityResponse{Count: len(refs), Dangling: refs}
}

func (s *stateService) Dashboard(ctx context.Context) *dto.DashboardResponse {
	activeCrops := 0
	for _, c := range s.st.Crops.List() {
		if c.Status == model.CropGrowing {
			activeCrops++
		}
	}

	resp := &dto.DashboardResponse{
		Stats: []dto.DashboardStat{
			{Key: "fields", Title: "Total Fields", Value: s.st.Fields.Len()},
			{Key: "active_crops", Title: "Active Crops", Value: activeCrops},
			{Key: "staff", Title: "Staff Members", Value: s.st.Staff.Len()},
		},
		RecentActivities: s.recentLogs(),
		Alerts:           []dto.DashboardAlert{},
	}

	// ── 告警：维护中的车辆/设备、悬空引用 ──
	for _, v := range s.st.Vehicles.List() {
		if v.Status == model.AssetMaintenance {
			resp.Alerts = append(resp.Alerts, dto.DashboardAlert{
				Kind: model.KindVehicle, ID: v.ID, Message: fmt.Sprintf("%s is under maintenance", v.Type),
			})
		}
	}
	for _, e := range s.st.Equipment.List() {
		if e.Status == model.AssetMaintenance {
			resp.Alerts = append(resp.Alerts, dto.DashboardAlert{
				Kind: model.KindEquipment, ID: e.ID, Message: fmt.Sprintf("%s is under maintenance", e.Name),
			})
		}
	}
	if n := s.Integrity(ctx).Count; n > 0 {
		resp.Alerts = append(resp.Alerts, dto.DashboardAlert{
			Message: fmt.Sprintf("%d dangling reference(s) after deletions", n),
		})
	}

	return resp
}

// recentLogs 按时间倒序取最近的日志
func (s *stateService) recentLogs() []*model.Log {
	byTime := query.Column[*model.Log]{Key: "timestamp", Value: func(l *model.Log) any { return l.Timestamp }}
	logs := query.Sort(s.st.Logs.List(), byTime, query.Desc)
	if len(logs) > recentActivityLimit {
		logs = logs[:recentActivityLimit]
	}
	return logs
}
