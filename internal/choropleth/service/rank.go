package service

import (
	"sort"

	"choropleth-service/internal/choropleth/model"
)

const (
	RankLimit = 10
	minFill   = 5.0
	maxFill   = 100.0
)

// Rank builds the top/bottom lists over logical records with a numeric
// value. Top is highest first, bottom lowest first.
func Rank(m *model.Mapping) model.Ranking {
	var items []model.Record
	for _, r := range m.Records() {
		if r.Value != nil {
			items = append(items, r)
		}
	}
	out := model.Ranking{Top: []model.RankedRecord{}, Bottom: []model.RankedRecord{}}
	if len(items) == 0 {
		return out
	}
	sort.SliceStable(items, func(i, j int) bool { return *items[i].Value < *items[j].Value })

	n := min(RankLimit, len(items))
	bottom := items[:n]
	top := make([]model.Record, 0, n)
	for i := len(items) - 1; i >= len(items)-n; i-- {
		top = append(top, items[i])
	}

	out.TopRange = model.Range{Min: top[len(top)-1].Value, Max: top[0].Value}
	out.BottomRange = model.Range{Min: bottom[0].Value, Max: bottom[len(bottom)-1].Value}
	out.Top = ranked(top, out.TopRange)
	out.Bottom = ranked(bottom, out.BottomRange)
	return out
}

func ranked(recs []model.Record, r model.Range) []model.RankedRecord {
	out := make([]model.RankedRecord, len(recs))
	for i, rec := range recs {
		fill, _ := FillRatio(*rec.Value, r)
		out[i] = model.RankedRecord{Record: rec, Fill: fill}
	}
	return out
}

// FillRatio is the bar width in percent for value within r, floored at 5 so
// the smallest entry still shows. ok is false (width 0) when r is open or
// collapsed to a single value.
func FillRatio(value float64, r model.Range) (float64, bool) {
	if r.Min == nil || r.Max == nil || *r.Min == *r.Max {
		return 0, false
	}
	pct := (value - *r.Min) / (*r.Max - *r.Min) * 100
	return max(minFill, min(pct, maxFill)), true
}
