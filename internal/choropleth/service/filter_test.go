package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"choropleth-service/internal/choropleth/model"
)

func TestVisible(t *testing.T) {
	rec := &model.Record{Name: "Toluca de Lerdo", Value: model.Float(99)}
	null := &model.Record{Name: "Metepec"}

	cases := []struct {
		name string
		rec  *model.Record
		id   string
		f    model.Filter
		want bool
	}{
		{"no filter", rec, "TOLUCA", model.Filter{}, true},
		{"no filter, no record", nil, "x", model.Filter{}, true},
		{"search by name", rec, "zzz", model.Filter{Search: "toluca de"}, true},
		{"search accent-insensitive", rec, "zzz", model.Filter{Search: "TOLÚCA"}, true},
		{"search ignores id when record resolved", rec, "Metepec", model.Filter{Search: "metepec"}, false},
		{"search falls back to id", nil, "San_Mateo_Atenco", model.Filter{Search: "mateo"}, true},
		{"search miss", nil, "Tultitlan", model.Filter{Search: "mateo"}, false},
		{"min fails", rec, "", model.Filter{Min: model.Float(100)}, false},
		{"min inclusive", rec, "", model.Filter{Min: model.Float(99)}, true},
		{"max fails", rec, "", model.Filter{Max: model.Float(50)}, false},
		{"max inclusive", rec, "", model.Filter{Max: model.Float(99)}, true},
		{"null fails min", null, "", model.Filter{Min: model.Float(0)}, false},
		{"null fails max", null, "", model.Filter{Max: model.Float(1e9)}, false},
		{"no record fails range", nil, "Toluca", model.Filter{Max: model.Float(1e9)}, false},
		{"search and range", rec, "", model.Filter{Search: "lerdo", Min: model.Float(1), Max: model.Float(100)}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Visible(c.rec, c.id, c.f))
		})
	}
}
