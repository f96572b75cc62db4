package handler

import (
	"github.com/gin-gonic/gin"

	"farmdesk/internal/service"
	"farmdesk/pkg/response"
)

// StateHandler 全局状态 HTTP 处理器
type StateHandler struct {
	stateSvc service.StateService
}

// NewStateHandler 创建 StateHandler
func NewStateHandler(stateSvc service.StateService) *StateHandler {
	return &StateHandler{stateSvc: stateSvc}
}

// Snapshot 所有集合的当前状态
// GET /api/v1/state
func (h *StateHandler) Snapshot(c *gin.Context) {
	response.OK(c, h.stateSvc.Snapshot(c.Request.Context()))
}

// Integrity 悬空引用报告
// GET /api/v1/integrity
func (h *StateHandler) Integrity(c *gin.Context) {
	response.OK(c, h.stateSvc.Integrity(c.Request.Context()))
}

// Dashboard 仪表盘
// GET /api/v1/dashboard
func (h *StateHandler) Dashboard(c *gin.Context) {
	response.OK(c, h.stateSvc.Dashboard(c.Request.Context()))
}
