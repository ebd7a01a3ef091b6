package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"choropleth-service/internal/choropleth/model"
	"choropleth-service/internal/utils"
)

var ErrUnknownMetric = errors.New("unknown metric column")

// DefaultMetric picks the first candidate mentioning MATRICULA, else the
// first candidate. ok is false when the workbook has no candidates.
func DefaultMetric(cols model.Columns) (model.Column, bool) {
	for _, c := range cols.Metrics {
		if strings.Contains(NormalizeKey(c.Name), KeyPreferred) {
			return c, true
		}
	}
	if len(cols.Metrics) == 0 {
		return model.Column{}, false
	}
	return cols.Metrics[0], true
}

// CountRows reports data rows and rows skipped for an empty name. It does
// not depend on a metric, so a workbook without candidates still reports
// its size.
func CountRows(g model.Grid, cols model.Columns) model.IngestStats {
	var st model.IngestStats
	for i := 1; i < len(g); i++ {
		st.Rows++
		if strings.TrimSpace(g.Cell(i, cols.Name.Index)) == "" {
			st.Skipped++
		}
	}
	return st
}

// Project builds the metric mapping for the named candidate column.
func Project(g model.Grid, cols model.Columns, metric string) (*model.Mapping, model.Range, model.IngestStats, error) {
	var st model.IngestStats
	mc, ok := cols.Metric(metric)
	if !ok {
		return model.NewMapping(), model.Range{}, st, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	codeCol, hasCode := cols.Code.Get()

	m := model.NewMapping()
	for i := 1; i < len(g); i++ {
		st.Rows++
		name := strings.TrimSpace(g.Cell(i, cols.Name.Index))
		if name == "" {
			st.Skipped++
			continue
		}
		code := ""
		if hasCode {
			code = strings.TrimSpace(g.Cell(i, codeCol.Index))
		}

		rec := model.Record{Name: name, Code: code, Metric: mc.Name}
		cell := g.Cell(i, mc.Index)
		if v, ok := utils.ParseMetric(cell); ok {
			rec.Value = model.Float(v)
		} else if strings.TrimSpace(cell) != "" {
			st.Unparseable++
		}
		m.Put(rec, NormalizeKey(name))
	}
	return m, ValueRange(m.Values()), st, nil
}

// ValueRange returns {nil, nil} for an empty set.
func ValueRange(values []float64) model.Range {
	lo, err := stats.Min(values)
	if err != nil {
		return model.Range{}
	}
	hi, err := stats.Max(values)
	if err != nil {
		return model.Range{}
	}
	return model.Range{Min: model.Float(lo), Max: model.Float(hi)}
}

// Summarize describes the value distribution of the current mapping.
func Summarize(m *model.Mapping) model.Summary {
	values := m.Values()
	s := model.Summary{Count: len(values), Nulls: m.Len() - len(values)}
	r := ValueRange(values)
	s.Min, s.Max = r.Min, r.Max
	if mean, err := stats.Mean(values); err == nil {
		s.Mean = model.Float(mean)
	}
	if med, err := stats.Median(values); err == nil {
		s.Median = model.Float(med)
	}
	return s
}
