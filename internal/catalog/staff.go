package catalog

import (
	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/store"
)

// StaffDefinition 员工页面
func StaffDefinition(fields store.Reader[*model.Field]) Definition[*model.Staff] {
	return Definition[*model.Staff]{
		Kind:        model.KindStaff,
		Title:       "staff member",
		DefaultSort: query.SortState{Key: "name", Dir: query.Asc},
		Columns: []query.Column[*model.Staff]{
			{Key: "name", Label: "Name", Sortable: true, Value: func(s *model.Staff) any { return s.Name }},
			{
				Key:      "role",
				Label:    "Role",
				Sortable: true,
				Value:    func(s *model.Staff) any { return string(s.Role) },
				Format:   func(s *model.Staff) string { return optionLabel(model.StaffRoleOptions(), string(s.Role)) },
			},
			{
				Key:    "assigned_fields",
				Label:  "Assigned Fields",
				Value:  func(s *model.Staff) any { return s.AssignedFields },
				Format: func(s *model.Staff) string { return query.FormatValue(namesOf(fields, fieldName, s.AssignedFields)) },
			},
		},
		Filters: []query.FilterDef[*model.Staff]{
			{
				Key:     "role",
				Label:   "Role",
				Value:   func(s *model.Staff) []string { return query.One(string(s.Role)) },
				Options: model.StaffRoleOptions,
			},
		},
		Form: form.Binding[*model.Staff]{
			Schema: func() form.Schema {
				return form.Schema{
					{Name: "name", Label: "Name", Type: form.Text, Required: true},
					{Name: "role", Label: "Role", Type: form.Select, Required: true, Options: model.StaffRoleOptions()},
					{Name: "assigned_fields", Label: "Assigned Fields", Type: form.MultiSelect, Options: nameOptions(fields, fieldName)()},
				}
			},
			Build: func(base *model.Staff, id string, v form.Values) *model.Staff {
				s := &model.Staff{}
				if base != nil {
					s = base.Clone()
				}
				s.ID = id
				s.Name = v.Get("name")
				s.Role = model.StaffRole(v.Get("role"))
				s.AssignedFields = v.All("assigned_fields")
				return s
			},
			Extract: func(s *model.Staff) form.Values {
				v := form.Values{}
				v.Set("name", s.Name)
				v.Set("role", string(s.Role))
				v.SetAll("assigned_fields", s.AssignedFields)
				return v
			},
		},
		DeleteConfirm: "Are you sure you want to delete this staff member?",
	}
}
