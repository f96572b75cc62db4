package store

import (
	"slices"

	"farmdesk/internal/model"
)

// DanglingRef 指向不存在记录的软引用
//
// 删除不级联：删除地块后，作物、员工、车辆等仍保留旧 ID。
// 这里只负责报告，不做修复。
type DanglingRef struct {
	Kind       model.Kind `json:"kind"`
	ID         string     `json:"id"`
	Attribute  string     `json:"attribute"`
	TargetKind model.Kind `json:"target_kind"`
	MissingID  string     `json:"missing_id"`
}

// DanglingReferences 扫描全部软引用
func (s *Store) DanglingReferences() []DanglingRef {
	fieldIDs := idSet(s.Fields.List())
	cropIDs := idSet(s.Crops.List())
	staffIDs := idSet(s.Staff.List())
	equipmentIDs := idSet(s.Equipment.List())

	var out []DanglingRef
	check := func(kind model.Kind, id, attr string, target model.Kind, ids map[string]struct{}, ref string) {
		if ref == "" {
			return
		}
		if _, ok := ids[ref]; !ok {
			out = append(out, DanglingRef{Kind: kind, ID: id, Attribute: attr, TargetKind: target, MissingID: ref})
		}
	}

	for _, f := range s.Fields.List() {
		for _, ref := range f.AssignedStaff {
			check(model.KindField, f.ID, "assigned_staff", model.KindStaff, staffIDs, ref)
		}
		for _, ref := range f.Crops {
			check(model.KindField, f.ID, "crops", model.KindCrop, cropIDs, ref)
		}
	}
	for _, c := range s.Crops.List() {
		check(model.KindCrop, c.ID, "field_id", model.KindField, fieldIDs, c.FieldID)
	}
	for _, st := range s.Staff.List() {
		for _, ref := range st.AssignedFields {
			check(model.KindStaff, st.ID, "assigned_fields", model.KindField, fieldIDs, ref)
		}
		for _, ref := range st.AssignedEquipment {
			check(model.KindStaff, st.ID, "assigned_equipment", model.KindEquipment, equipmentIDs, ref)
		}
	}
	for _, v := range s.Vehicles.List() {
		check(model.KindVehicle, v.ID, "assigned_field", model.KindField, fieldIDs, v.AssignedField)
	}
	for _, e := range s.Equipment.List() {
		check(model.KindEquipment, e.ID, "assigned_to", model.KindStaff, staffIDs, e.AssignedTo)
	}
	for _, l := range s.Logs.List() {
		check(model.KindLog, l.ID, "field_id", model.KindField, fieldIDs, l.FieldID)
		check(model.KindLog, l.ID, "created_by", model.KindStaff, staffIDs, l.CreatedBy)
	}
	return out
}

// ReferencesTo 列出指向 kind/id 的所有引用；该记录被删除后它们即成为悬空引用
func (s *Store) ReferencesTo(kind model.Kind, id string) []DanglingRef {
	var out []DanglingRef
	add := func(k model.Kind, rid, attr string) {
		out = append(out, DanglingRef{Kind: k, ID: rid, Attribute: attr, TargetKind: kind, MissingID: id})
	}
	switch kind {
	case model.KindField:
		for _, c := range s.Crops.List() {
			if c.FieldID == id {
				add(model.KindCrop, c.ID, "field_id")
			}
		}
		for _, st := range s.Staff.List() {
			if slices.Contains(st.AssignedFields, id) {
				add(model.KindStaff, st.ID, "assigned_fields")
			}
		}
		for _, v := range s.Vehicles.List() {
			if v.AssignedField == id {
				add(model.KindVehicle, v.ID, "assigned_field")
			}
		}
		for _, l := range s.Logs.List() {
			if l.FieldID == id {
				add(model.KindLog, l.ID, "field_id")
			}
		}
	case model.KindStaff:
		for _, f := range s.Fields.List() {
			if slices.Contains(f.AssignedStaff, id) {
				add(model.KindField, f.ID, "assigned_staff")
			}
		}
		for _, e := range s.Equipment.List() {
			if e.AssignedTo == id {
				add(model.KindEquipment, e.ID, "assigned_to")
			}
		}
		for _, l := range s.Logs.List() {
			if l.CreatedBy == id {
				add(model.KindLog, l.ID, "created_by")
			}
		}
	case model.KindCrop:
		for _, f := range s.Fields.List() {
			if slices.Contains(f.Crops, id) {
				add(model.KindField, f.ID, "crops")
			}
		}
	case model.KindEquipment:
		for _, st := range s.Staff.List() {
			if slices.Contains(st.AssignedEquipment, id) {
				add(model.KindStaff, st.ID, "assigned_equipment")
			}
		}
	}
	return out
}

func idSet[T model.Record](records []T) map[string]struct{} {
	ids := make(map[string]struct{}, len(records))
	for _, r := range records {
		ids[r.GetID()] = struct{}{}
	}
	return ids
}
