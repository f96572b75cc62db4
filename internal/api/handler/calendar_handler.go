package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmdesk/internal/service"
)

// CalendarHandler 日历订阅 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// CropCalendar 作物日历（iCalendar），查询参数与作物列表筛选一致
// GET /api/v1/calendar/crops.ics?field_id=xxx
func (h *CalendarHandler) CropCalendar(c *gin.Context) {
	body, err := h.calendarSvc.CropCalendar(c.Request.Context(), listRequest(c).Filters)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="crops.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}
