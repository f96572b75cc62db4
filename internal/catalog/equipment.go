package catalog

import (
	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/store"
)

// EquipmentDefinition 设备页面
func EquipmentDefinition(staff store.Reader[*model.Staff]) Definition[*model.Equipment] {
	return Definition[*model.Equipment]{
		Kind:        model.KindEquipment,
		Title:       "equipment",
		DefaultSort: query.SortState{Key: "name", Dir: query.Asc},
		Columns: []query.Column[*model.Equipment]{
			{Key: "name", Label: "Name", Sortable: true, Value: func(e *model.Equipment) any { return e.Name }},
			{Key: "type", Label: "Type", Sortable: true, Value: func(e *model.Equipment) any { return string(e.Type) }},
			{Key: "status", Label: "Status", Sortable: true, Value: func(e *model.Equipment) any { return string(e.Status) }},
			{
				Key:      "assigned_to",
				Label:    "Assigned To",
				Sortable: true,
				Value:    func(e *model.Equipment) any { return e.AssignedTo },
				Format:   func(e *model.Equipment) string { return nameOf(staff, staffName, e.AssignedTo) },
			},
		},
		Filters: []query.FilterDef[*model.Equipment]{
			{
				Key:     "status",
				Label:   "Status",
				Value:   func(e *model.Equipment) []string { return query.One(string(e.Status)) },
				Options: model.AssetStatusOptions,
			},
			{
				Key:     "type",
				Label:   "Type",
				Value:   func(e *model.Equipment) []string { return query.One(string(e.Type)) },
				Options: model.EquipmentTypeOptions,
			},
		},
		Form: form.Binding[*model.Equipment]{
			Schema: func() form.Schema {
				return form.Schema{
					{Name: "name", Label: "Name", Type: form.Text, Required: true},
					{Name: "type", Label: "Type", Type: form.Select, Required: true, Options: model.EquipmentTypeOptions()},
					{Name: "status", Label: "Status", Type: form.Select, Options: model.AssetStatusOptions(), Default: string(model.AssetAvailable)},
					{Name: "assigned_to", Label: "Assigned To", Type: form.Select, Options: nameOptions(staff, staffName)()},
				}
			},
			Build: func(base *model.Equipment, id string, v form.Values) *model.Equipment {
				e := &model.Equipment{}
				if base != nil {
					e = base.Clone()
				}
				e.ID = id
				e.Name = v.Get("name")
				e.Type = model.EquipmentType(v.Get("type"))
				e.Status = model.AssetStatus(v.Get("status"))
				if e.Status == "" {
					e.Status = model.AssetAvailable
				}
				e.AssignedTo = v.Get("assigned_to")
				return e
			},
			Extract: func(e *model.Equipment) form.Values {
				v := form.Values{}
				v.Set("name", e.Name)
				v.Set("type", string(e.Type))
				v.Set("status", string(e.Status))
				v.Set("assigned_to", e.AssignedTo)
				return v
			},
		},
		DeleteConfirm: "Are you sure you want to delete this equipment?",
	}
}
