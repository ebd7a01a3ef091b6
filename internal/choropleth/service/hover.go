package service

import (
	"sync"

	"github.com/dustin/go-humanize"

	"choropleth-service/internal/choropleth/model"
)

const (
	NoData     = "Sin dato"
	ValueLabel = "Valor"
	HoverEnter = "enter"
	HoverMove  = "move"
	HoverLeave = "leave"
)

// Hover is the single tooltip slot of one map view. It is created once and
// never re-bound: Enter looks the region up in whatever mapping is current
// at event time. The last Enter wins.
type Hover struct {
	mu     sync.Mutex
	active bool
	tip    model.Tooltip
}

// Enter composes the payload for region at pointer (x, y).
func (h *Hover) Enter(m *model.Mapping, region string, x, y float64) model.Tooltip {
	tip := Describe(m, region)
	tip.X, tip.Y = x, y

	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = true
	h.tip = tip
	return tip
}

// Move repositions the current tooltip without recomposing it.
func (h *Hover) Move(x, y float64) (model.Tooltip, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.active {
		return model.Tooltip{}, false
	}
	h.tip.X, h.tip.Y = x, y
	return h.tip, true
}

func (h *Hover) Leave() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = false
	h.tip = model.Tooltip{}
}

func (h *Hover) Current() (model.Tooltip, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tip, h.active
}

// Describe builds the tooltip text for a region without touching any slot.
func Describe(m *model.Mapping, region string) model.Tooltip {
	rec, ok := Resolve(m, region)
	if !ok {
		return model.Tooltip{Name: region, Metric: ValueLabel, Value: NoData}
	}
	tip := model.Tooltip{Name: rec.Name, Code: rec.Code, Metric: rec.Metric, Value: NoData}
	if tip.Metric == "" {
		tip.Metric = ValueLabel
	}
	if rec.Value != nil {
		tip.Value = humanize.CommafWithDigits(*rec.Value, 2)
	}
	return tip
}
