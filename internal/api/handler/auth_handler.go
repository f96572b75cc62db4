package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"farmdesk/config"
	"farmdesk/internal/dto"
	"farmdesk/internal/service"
	"farmdesk/pkg/response"
)

const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/v1/auth"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cfg     *config.AuthConfig // 可为 nil：Cookie 使用会话级默认值
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cfg: cfg}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeBadParams, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, response.CodeBadCredentials, "邮箱或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, result.RememberMe)
	response.OK(c, result)
}

// RefreshToken 刷新 Token，优先读取请求体，其次读取 Cookie
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	_ = c.ShouldBindJSON(&req)

	token := req.RefreshToken
	if token == "" {
		token, _ = c.Cookie(refreshCookieName)
	}
	if token == "" {
		response.BadRequest(c, response.CodeBadParams, "refresh_token 不能为空")
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrUserNotFound) {
			h.clearRefreshCookie(c)
			response.Unauthorized(c, response.CodeUnauthenticated, "登录已失效，请重新登录")
			return
		}
		response.InternalError(c)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, result.RememberMe)
	response.OK(c, result)
}

// Logout 用户登出
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	jti, expiresAt := GetTokenInfo(c)

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt, userID); err != nil {
		response.InternalError(c)
		return
	}

	h.clearRefreshCookie(c)
	response.OK(c, nil)
}

// GetCurrentUser 当前登录用户
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, response.CodeUnauthenticated, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// ── Cookie ──

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, rememberMe bool) {
	if token == "" {
		return
	}

	var (
		maxAge int // 0 = 会话 Cookie
		secure bool
		domain string
	)
	sameSite := http.SameSiteLaxMode
	if h.cfg != nil {
		maxAge = int(h.cfg.RefreshTokenTTLDefault.Seconds())
		if rememberMe {
			maxAge = int(h.cfg.RefreshTokenTTLRemember.Seconds())
		}
		secure = h.cfg.Cookie.Secure
		domain = h.cfg.Cookie.Domain
		sameSite = parseSameSite(h.cfg.Cookie.SameSite)
	}

	c.SetSameSite(sameSite)
	c.SetCookie(refreshCookieName, token, maxAge, refreshCookiePath, domain, secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	var (
		secure bool
		domain string
	)
	if h.cfg != nil {
		secure = h.cfg.Cookie.Secure
		domain = h.cfg.Cookie.Domain
	}
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, domain, secure, true)
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
