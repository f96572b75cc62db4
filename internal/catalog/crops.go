package catalog

import (
	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/store"
)

// CropDefinition 作物页面；field_id 的筛选选项与表单下拉均来自当前地块列表
func CropDefinition(fields store.Reader[*model.Field]) Definition[*model.Crop] {
	fieldOptions := nameOptions(fields, fieldName)

	return Definition[*model.Crop]{
		Kind:        model.KindCrop,
		Title:       "crop",
		DefaultSort: query.SortState{Key: "name", Dir: query.Asc},
		Columns: []query.Column[*model.Crop]{
			{Key: "name", Label: "Crop Name", Sortable: true, Value: func(c *model.Crop) any { return c.Name }},
			{
				Key:      "field_id",
				Label:    "Field",
				Sortable: true,
				Value:    func(c *model.Crop) any { return c.FieldID },
				Format:   func(c *model.Crop) string { return nameOf(fields, fieldName, c.FieldID) },
			},
			{Key: "planted_date", Label: "Planted Date", Sortable: true, Value: func(c *model.Crop) any { return c.PlantedDate }},
			{Key: "expected_harvest_date", Label: "Expected Harvest", Sortable: true, Value: func(c *model.Crop) any { return c.ExpectedHarvestDate }},
			{Key: "status", Label: "Status", Sortable: true, Value: func(c *model.Crop) any { return string(c.Status) }},
		},
		Filters: []query.FilterDef[*model.Crop]{
			{
				Key:     "status",
				Label:   "Status",
				Value:   func(c *model.Crop) []string { return query.One(string(c.Status)) },
				Options: model.CropStatusOptions,
			},
			{
				Key:     "field_id",
				Label:   "Field",
				Value:   func(c *model.Crop) []string { return query.One(c.FieldID) },
				Options: fieldOptions,
			},
		},
		Form: form.Binding[*model.Crop]{
			Schema: func() form.Schema {
				return form.Schema{
					{Name: "name", Label: "Crop Name", Type: form.Text, Required: true},
					{Name: "field_id", Label: "Field", Type: form.Select, Required: true, Options: fieldOptions()},
					{Name: "planted_date", Label: "Planted Date", Type: form.Date, Required: true},
					{Name: "expected_harvest_date", Label: "Expected Harvest Date", Type: form.Date, Required: true},
					{Name: "status", Label: "Status", Type: form.Select, Options: model.CropStatusOptions(), Default: string(model.CropGrowing)},
				}
			},
			Build: func(base *model.Crop, id string, v form.Values) *model.Crop {
				c := &model.Crop{}
				if base != nil {
					c = base.Clone()
				}
				c.ID = id
				c.Name = v.Get("name")
				c.FieldID = v.Get("field_id")
				c.PlantedDate = v.Get("planted_date")
				c.ExpectedHarvestDate = v.Get("expected_harvest_date")
				c.Status = model.CropStatus(v.Get("status"))
				if c.Status == "" {
					c.Status = model.CropGrowing
				}
				return c
			},
			Extract: func(c *model.Crop) form.Values {
				v := form.Values{}
				v.Set("name", c.Name)
				v.Set("field_id", c.FieldID)
				v.Set("planted_date", c.PlantedDate)
				v.Set("expected_harvest_date", c.ExpectedHarvestDate)
				v.Set("status", string(c.Status))
				return v
			},
		},
		DeleteConfirm: "Are you sure you want to delete this crop?",
	}
}
