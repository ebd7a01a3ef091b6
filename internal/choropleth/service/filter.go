package service

import (
	"strings"

	"choropleth-service/internal/choropleth/model"
)

// DimOpacity is applied to regions that fail the filter; they stay drawn so
// the map keeps its shape.
const DimOpacity = 0.18

// Visible reports whether a region passes search and range filters. rec is
// nil when the region has no data; a nil value fails any active bound.
func Visible(rec *model.Record, id string, f model.Filter) bool {
	return matchesSearch(rec, id, f.Search) && inRange(rec, f.Min, f.Max)
}

func matchesSearch(rec *model.Record, id, search string) bool {
	q := NormalizeKey(search)
	if q == "" {
		return true
	}
	if rec != nil {
		return strings.Contains(NormalizeKey(rec.Name), q)
	}
	return strings.Contains(NormalizeKey(id), q)
}

func inRange(rec *model.Record, lo, hi *float64) bool {
	var v *float64
	if rec != nil {
		v = rec.Value
	}
	if lo != nil && (v == nil || *v < *lo) {
		return false
	}
	if hi != nil && (v == nil || *v > *hi) {
		return false
	}
	return true
}
