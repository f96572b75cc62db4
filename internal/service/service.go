package service

import (
	"go.uber.org/zap"

	"farmdesk/internal/catalog"
	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/repository"
	"farmdesk/internal/store"
	"farmdesk/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	User     UserService
	State    StateService
	Calendar CalendarService

	Fields    EntityService[*model.Field]
	Crops     EntityService[*model.Crop]
	Staff     EntityService[*model.Staff]
	Vehicles  EntityService[*model.Vehicle]
	Equipment EntityService[*model.Equipment]
	Logs      EntityService[*model.Log]
}

// NewService 创建 Service 聚合
// basePath 为 API 路由前缀（如 /api/v1），blacklist 可为 nil
func NewService(
	repo *repository.Repository,
	st *store.Store,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	basePath string,
	logger *zap.Logger,
) *Service {
	cat := catalog.New(st)

	return &Service{
		Auth:     NewAuthService(repo, jwtMgr, blacklist, logger),
		User:     NewUserService(repo, logger),
		State:    NewStateService(st, logger),
		Calendar: NewCalendarService(st, cat.Crops, logger),

		Fields:    NewEntityService(cat.Fields, st.Fields, st, form.NewUUID, basePath, logger),
		Crops:     NewEntityService(cat.Crops, st.Crops, st, form.NewUUID, basePath, logger),
		Staff:     NewEntityService(cat.Staff, st.Staff, st, form.NewUUID, basePath, logger),
		Vehicles:  NewEntityService(cat.Vehicles, st.Vehicles, st, form.NewUUID, basePath, logger),
		Equipment: NewEntityService(cat.Equipment, st.Equipment, st, form.NewUUID, basePath, logger),
		Logs:      NewEntityService(cat.Logs, st.Logs, st, form.NewUUID, basePath, logger),
	}
}
