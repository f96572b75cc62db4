package repository

import "farmdesk/config"

// Repository 所有 Repository 的聚合入口
// 业务记录由 store 持有；此处仅保留登录用户目录
type Repository struct {
	User UserRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(users []config.UserConfig) *Repository {
	return &Repository{
		User: NewUserRepo(users),
	}
}
