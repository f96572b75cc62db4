package handler

import (
	"farmdesk/config"
	"farmdesk/internal/model"
	"farmdesk/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	State    *StateHandler
	Calendar *CalendarHandler

	Fields    *EntityHandler[*model.Field]
	Crops     *EntityHandler[*model.Crop]
	Staff     *EntityHandler[*model.Staff]
	Vehicles  *EntityHandler[*model.Vehicle]
	Equipment *EntityHandler[*model.Equipment]
	Logs      *EntityHandler[*model.Log]
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, authCfg *config.AuthConfig) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth, authCfg),
		User:     NewUserHandler(svc.User),
		State:    NewStateHandler(svc.State),
		Calendar: NewCalendarHandler(svc.Calendar),

		Fields:    NewEntityHandler(svc.Fields),
		Crops:     NewEntityHandler(svc.Crops),
		Staff:     NewEntityHandler(svc.Staff),
		Vehicles:  NewEntityHandler(svc.Vehicles),
		Equipment: NewEntityHandler(svc.Equipment),
		Logs:      NewEntityHandler(svc.Logs),
	}
}
