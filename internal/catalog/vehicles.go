package catalog

import (
	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/store"
)

// VehicleDefinition 车辆页面
func VehicleDefinition(fields store.Reader[*model.Field]) Definition[*model.Vehicle] {
	return Definition[*model.Vehicle]{
		Kind:        model.KindVehicle,
		Title:       "vehicle",
		DefaultSort: query.SortState{Key: "type", Dir: query.Asc},
		Columns: []query.Column[*model.Vehicle]{
			{
				Key:      "type",
				Label:    "Vehicle Type",
				Sortable: true,
				Value:    func(v *model.Vehicle) any { return string(v.Type) },
				Format:   func(v *model.Vehicle) string { return optionLabel(model.VehicleTypeOptions(), string(v.Type)) },
			},
			{Key: "status", Label: "Status", Sortable: true, Value: func(v *model.Vehicle) any { return string(v.Status) }},
			{
				Key:      "assigned_field",
				Label:    "Assigned Field",
				Sortable: true,
				Value:    func(v *model.Vehicle) any { return v.AssignedField },
				Format:   func(v *model.Vehicle) string { return nameOf(fields, fieldName, v.AssignedField) },
			},
		},
		Filters: []query.FilterDef[*model.Vehicle]{
			{
				Key:     "status",
				Label:   "Status",
				Value:   func(v *model.Vehicle) []string { return query.One(string(v.Status)) },
				Options: model.AssetStatusOptions,
			},
			{
				Key:     "type",
				Label:   "Type",
				Value:   func(v *model.Vehicle) []string { return query.One(string(v.Type)) },
				Options: model.VehicleTypeOptions,
			},
		},
		Form: form.Binding[*model.Vehicle]{
			Schema: func() form.Schema {
				return form.Schema{
					{Name: "type", Label: "Vehicle Type", Type: form.Select, Required: true, Options: model.VehicleTypeOptions()},
					{Name: "status", Label: "Status", Type: form.Select, Options: model.AssetStatusOptions(), Default: string(model.AssetAvailable)},
					{Name: "assigned_field", Label: "Assigned Field", Type: form.Select, Options: nameOptions(fields, fieldName)()},
				}
			},
			Build: func(base *model.Vehicle, id string, v form.Values) *model.Vehicle {
				veh := &model.Vehicle{}
				if base != nil {
					veh = base.Clone()
				}
				veh.ID = id
				veh.Type = model.VehicleType(v.Get("type"))
				veh.Status = model.AssetStatus(v.Get("status"))
				if veh.Status == "" {
					veh.Status = model.AssetAvailable
				}
				veh.AssignedField = v.Get("assigned_field")
				return veh
			},
			Extract: func(veh *model.Vehicle) form.Values {
				v := form.Values{}
				v.Set("type", string(veh.Type))
				v.Set("status", string(veh.Status))
				v.Set("assigned_field", veh.AssignedField)
				return v
			},
		},
		DeleteConfirm: "Are you sure you want to delete this vehicle?",
	}
}
