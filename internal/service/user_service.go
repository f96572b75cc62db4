package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"farmdesk/internal/dto"
	"farmdesk/internal/repository"
	pkgerrors "farmdesk/pkg/errors"
)

// UserService 用户目录查询接口（用户来自配置，只读）
type UserService interface {
	// List 按 ID 排序列出用户；role 非空时只返回该角色
	List(ctx context.Context, role string) ([]dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) List(ctx context.Context, role string) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		if role != "" && users[i].Role != role {
			continue
		}
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}
