package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"farmdesk/config"
	"farmdesk/internal/api/handler"
	"farmdesk/internal/api/middleware"
	"farmdesk/internal/model"
	"farmdesk/pkg/jwt"
	"farmdesk/pkg/metrics"
	"farmdesk/pkg/redis"
)

// APIPrefix API 路由前缀，同时用于生成行级操作链接
const APIPrefix = "/api/v1"

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil：黑名单检查与限流降级为放行
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// nil *redis.Client 不能直接赋给接口，否则接口不为 nil
	var (
		blacklist middleware.TokenChecker
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, cfg.Log.SkipPaths...))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 / 指标 ──
	r.GET("/health", health(rdb))
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// ── API v1 ──
	v1 := r.Group(APIPrefix)
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(limiter, cfg.Server.RateLimit.Limit, cfg.Server.RateLimit.Window))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 用户目录
			users := authorized.Group("/users")
			users.Use(middleware.RoleAuth(config.RoleAdmin, config.RoleManager))
			{
				users.GET("", h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
			}

			authorized.GET("/state", h.State.Snapshot)
			authorized.GET("/dashboard", h.State.Dashboard)
			authorized.GET("/integrity", middleware.RoleAuth(config.RoleAdmin, config.RoleManager), h.State.Integrity)
			authorized.GET("/calendar/crops.ics", h.Calendar.CropCalendar)

			// 六类记录共用一套路由
			registerEntity(authorized, model.KindField, h.Fields)
			registerEntity(authorized, model.KindCrop, h.Crops)
			registerEntity(authorized, model.KindStaff, h.Staff)
			registerEntity(authorized, model.KindVehicle, h.Vehicles)
			registerEntity(authorized, model.KindEquipment, h.Equipment)
			registerEntity(authorized, model.KindLog, h.Logs)
		}
	}

	return r
}

func registerEntity[T model.Record](g *gin.RouterGroup, kind model.Kind, h *handler.EntityHandler[T]) {
	records := g.Group("/" + string(kind))
	{
		records.GET("", h.List)
		records.PUT("", middleware.RoleAuth(config.RoleAdmin), h.Replace)
		records.POST("", h.Create)
		records.GET("/form", h.NewForm)
		records.GET("/export", h.Export)
		records.PATCH("/filters", h.SetFilters)
		records.GET("/:id", h.Get)
		records.GET("/:id/form", h.EditForm)
		records.PUT("/:id", h.Update)
		records.DELETE("/:id", h.Delete)
	}
}

func health(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"status": "ok", "redis": "disabled"}
		if rdb != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx); err != nil {
				status["redis"] = "down"
			} else {
				status["redis"] = "ok"
			}
		}
		c.JSON(http.StatusOK, status)
	}
}
