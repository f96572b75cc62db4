package catalog

import (
	"time"

	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/store"
)

// Now 日志时间戳缺省值来源，测试中可替换
var Now = time.Now

// LogDefinition 作业日志页面，默认按时间倒序
func LogDefinition(fields store.Reader[*model.Field], staff store.Reader[*model.Staff]) Definition[*model.Log] {
	fieldOptions := nameOptions(fields, fieldName)

	return Definition[*model.Log]{
		Kind:        model.KindLog,
		Title:       "log",
		DefaultSort: query.SortState{Key: "timestamp", Dir: query.Desc},
		Columns: []query.Column[*model.Log]{
			{Key: "timestamp", Label: "Time", Sortable: true, Value: func(l *model.Log) any { return l.Timestamp }},
			{
				Key:      "field_id",
				Label:    "Field",
				Sortable: true,
				Value:    func(l *model.Log) any { return l.FieldID },
				Format:   func(l *model.Log) string { return nameOf(fields, fieldName, l.FieldID) },
			},
			{Key: "type", Label: "Type", Sortable: true, Value: func(l *model.Log) any { return string(l.Type) }},
			{Key: "description", Label: "Description", Value: func(l *model.Log) any { return l.Description }},
			{
				Key:      "created_by",
				Label:    "Created By",
				Sortable: true,
				Value:    func(l *model.Log) any { return l.CreatedBy },
				Format:   func(l *model.Log) string { return nameOf(staff, staffName, l.CreatedBy) },
			},
		},
		Filters: []query.FilterDef[*model.Log]{
			{
				Key:     "type",
				Label:   "Type",
				Value:   func(l *model.Log) []string { return query.One(string(l.Type)) },
				Options: model.LogTypeOptions,
			},
			{
				Key:     "field_id",
				Label:   "Field",
				Value:   func(l *model.Log) []string { return query.One(l.FieldID) },
				Options: fieldOptions,
			},
		},
		Form: form.Binding[*model.Log]{
			Schema: func() form.Schema {
				return form.Schema{
					{Name: "field_id", Label: "Field", Type: form.Select, Required: true, Options: fieldOptions()},
					{Name: "type", Label: "Type", Type: form.Select, Required: true, Options: model.LogTypeOptions()},
					{Name: "timestamp", Label: "Time", Type: form.DateTime},
					{Name: "description", Label: "Description", Type: form.TextArea, Required: true},
					{Name: "created_by", Label: "Created By", Type: form.Select, Required: true, Options: nameOptions(staff, staffName)()},
				}
			},
			Build: func(base *model.Log, id string, v form.Values) *model.Log {
				l := &model.Log{}
				if base != nil {
					l = base.Clone()
				}
				l.ID = id
				l.FieldID = v.Get("field_id")
				l.Type = model.LogType(v.Get("type"))
				l.Description = v.Get("description")
				l.CreatedBy = v.Get("created_by")
				l.Timestamp = normalizeTimestamp(v.Get("timestamp"), l.Timestamp)
				return l
			},
			Extract: func(l *model.Log) form.Values {
				v := form.Values{}
				v.Set("field_id", l.FieldID)
				v.Set("type", string(l.Type))
				v.Set("timestamp", l.Timestamp)
				v.Set("description", l.Description)
				v.Set("created_by", l.CreatedBy)
				return v
			},
		},
		DeleteConfirm: "Are you sure you want to delete this log?",
	}
}

// normalizeTimestamp 统一为 RFC3339 (UTC)。未填写时保留原值，新建记录取当前时间。
func normalizeTimestamp(raw, previous string) string {
	if raw == "" {
		if previous != "" {
			return previous
		}
		return Now().UTC().Format(time.RFC3339)
	}
	t, err := form.ParseDateTime(raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format(time.RFC3339)
}
