package repository

import (
	"context"
	"sort"
	"strings"

	"farmdesk/config"
	"farmdesk/internal/model"
	pkgerrors "farmdesk/pkg/errors"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// userRepo UserRepository 的只读实现，数据来自配置中的 auth.users
type userRepo struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

// NewUserRepo 创建 UserRepository 实例。邮箱不区分大小写。
func NewUserRepo(users []config.UserConfig) UserRepository {
	r := &userRepo{
		byID:    make(map[string]*model.User, len(users)),
		byEmail: make(map[string]*model.User, len(users)),
	}
	for _, u := range users {
		user := &model.User{
			UserID:       u.ID,
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Role:         u.Role,
		}
		r.byID[u.ID] = user
		r.byEmail[strings.ToLower(u.Email)] = user
	}
	return r
}

func (r *userRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, pkgerrors.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, pkgerrors.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *userRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}
