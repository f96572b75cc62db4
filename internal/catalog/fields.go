package catalog

import (
	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/store"
)

// FieldDefinition 地块页面
func FieldDefinition(staff store.Reader[*model.Staff]) Definition[*model.Field] {
	return Definition[*model.Field]{
		Kind:        model.KindField,
		Title:       "field",
		DefaultSort: query.SortState{Key: "name", Dir: query.Asc},
		Columns: []query.Column[*model.Field]{
			{Key: "name", Label: "Field Name", Sortable: true, Value: func(f *model.Field) any { return f.Name }},
			{Key: "location", Label: "Location", Sortable: true, Value: func(f *model.Field) any { return f.Location }},
			{Key: "size", Label: "Size (acres)", Sortable: true, Value: func(f *model.Field) any { return f.Size }},
			{Key: "status", Label: "Status", Sortable: true, Value: func(f *model.Field) any { return string(f.Status) }},
		},
		Filters: []query.FilterDef[*model.Field]{
			{
				Key:     "status",
				Label:   "Status",
				Value:   func(f *model.Field) []string { return query.One(string(f.Status)) },
				Options: model.FieldStatusOptions,
			},
		},
		Form: form.Binding[*model.Field]{
			Schema: func() form.Schema {
				return form.Schema{
					{Name: "name", Label: "Field Name", Type: form.Text, Required: true},
					{Name: "location", Label: "Location", Type: form.Text, Required: true},
					{Name: "size", Label: "Size (acres)", Type: form.Number, Required: true, Positive: true},
					{Name: "status", Label: "Status", Type: form.Select, Required: true, Options: model.FieldStatusOptions(), Default: string(model.FieldActive)},
					{Name: "assigned_staff", Label: "Assigned Staff", Type: form.MultiSelect, Options: nameOptions(staff, staffName)()},
				}
			},
			Build: func(base *model.Field, id string, v form.Values) *model.Field {
				f := &model.Field{}
				if base != nil {
					f = base.Clone()
				}
				f.ID = id
				f.Name = v.Get("name")
				f.Location = v.Get("location")
				f.Size = v.Float("size")
				f.Status = model.FieldStatus(v.Get("status"))
				f.AssignedStaff = v.All("assigned_staff")
				return f
			},
			Extract: func(f *model.Field) form.Values {
				v := form.Values{}
				v.Set("name", f.Name)
				v.Set("location", f.Location)
				v.Set("size", formatFloat(f.Size))
				v.Set("status", string(f.Status))
				v.SetAll("assigned_staff", f.AssignedStaff)
				return v
			},
		},
		DeleteConfirm: "Are you sure you want to delete this field?",
	}
}
