package service

import (
	"choropleth-service/internal/choropleth/model"
)

const (
	StrokeColor = "#0b0f14"
	StrokeWidth = 0.7
)

// Resolve finds the record for a geometry id: the id as written first, then
// its normalized key, since map ids and workbook names may differ in case,
// accents and spacing. Both probes use the shared alias table, so a later
// row whose key equals an earlier raw name takes over that name.
func Resolve(m *model.Mapping, id string) (model.Record, bool) {
	if rec, ok := m.Lookup(id); ok {
		return rec, true
	}
	return m.Lookup(NormalizeKey(id))
}

type BindStats struct {
	Regions    int `json:"regions"`
	Matched    int `json:"matched"`
	Unresolved int `json:"unresolved"`
	Visible    int `json:"visible"`
}

// Bind computes the style of every addressable region. Unresolved regions
// get class 0 and are never an error.
func Bind(ids []string, m *model.Mapping, c *Classifier, p Palette, f model.Filter) ([]model.Binding, BindStats) {
	out := make([]model.Binding, 0, len(ids))
	st := BindStats{Regions: len(ids)}
	for _, id := range ids {
		b := model.Binding{ID: id, Opacity: 1}
		var value *float64
		if rec, ok := Resolve(m, id); ok {
			b.Matched = true
			b.Record = &rec
			value = rec.Value
			st.Matched++
		} else {
			st.Unresolved++
		}
		b.Class = c.Classify(value)
		b.Fill = p.Color(b.Class)
		b.Visible = Visible(b.Record, id, f)
		if b.Visible {
			st.Visible++
		} else {
			b.Opacity = DimOpacity
		}
		out = append(out, b)
	}
	return out, st
}
