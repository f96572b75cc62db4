package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver 请求指标收集（Prometheus 实现）
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics 请求计数与延迟中间件，按路由模板聚合
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		observer.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
