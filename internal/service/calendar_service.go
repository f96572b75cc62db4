package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"farmdesk/internal/catalog"
	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/store"
)

// ── 作物日历 ──────────────────────────────────────────────
//
// 每个作物生成两个全天事件：播种日与预计收获日。
// 日期无法解析的一侧跳过；事件 UID 稳定，重复订阅不会产生重复条目。
// ─────────────────────────────────────────────────────────────

const calendarProductID = "-//farmdesk//crop calendar//EN"

// CalendarService 日历导出接口
type CalendarService interface {
	// CropCalendar 以 iCalendar 格式导出作物日历，filters 与作物列表页的筛选条件一致
	CropCalendar(ctx context.Context, filters query.Filters) (string, error)
}

type calendarService struct {
	crops  store.Reader[*model.Crop]
	fields store.Reader[*model.Field]
	def    catalog.Definition[*model.Crop]
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(st *store.Store, def catalog.Definition[*model.Crop], logger *zap.Logger) CalendarService {
	return &calendarService{crops: st.Crops, fields: st.Fields, def: def, logger: logger}
}

func (s *calendarService) CropCalendar(_ context.Context, filters query.Filters) (string, error) {
	if err := query.Validate(s.def.Filters, filters); err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName("Crop Calendar")

	now := time.Now().UTC()
	skipped := 0
	for _, c := range query.Filter(s.crops.List(), s.def.Filters, filters) {
		location := c.FieldID
		if f, ok := s.fields.Get(c.FieldID); ok {
			location = f.Name
		}

		for _, e := range []struct {
			suffix  string
			date    string
			summary string
		}{
			{"planted", c.PlantedDate, "Plant " + c.Name},
			{"harvest", c.ExpectedHarvestDate, "Harvest " + c.Name},
		} {
			day, err := time.Parse(form.DateLayout, e.date)
			if err != nil {
				skipped++
				continue
			}
			evt := cal.AddEvent(fmt.Sprintf("crop-%s-%s@farmdesk", c.ID, e.suffix))
			evt.SetDtStampTime(now)
			evt.SetAllDayStartAt(day)
			evt.SetAllDayEndAt(day.AddDate(0, 0, 1))
			evt.SetSummary(e.summary)
			evt.SetLocation(location)
			evt.SetDescription(fmt.Sprintf("Crop status: %s", c.Status))
		}
	}

	if skipped > 0 {
		s.logger.Warn("部分作物日期无法解析，已跳过", zap.Int("skipped", skipped))
	}
	return cal.Serialize(), nil
}
