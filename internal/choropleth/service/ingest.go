package service

import (
	"errors"
	"strings"

	"choropleth-service/internal/choropleth/model"
)

// ключи служебных колонок после NormalizeKey
const (
	KeyName      = "NOMBRE_DEL_MUNICIPIO"
	KeyCode      = "CVE_MUN"
	KeyPreferred = "MATRICULA"
)

var ErrMissingIdentityColumn = errors.New("column 'NOMBRE DEL MUNICIPIO' not found")

type role int

const (
	roleMetric role = iota
	roleCode
	roleName
)

var roleKeys = map[string]role{
	KeyCode: roleCode,
	KeyName: roleName,
}

// Ingest resolves the header row into identity and metric columns.
// Leftmost header wins a role; a duplicate of a claimed role header is left
// unclaimed and becomes an ordinary metric candidate.
func Ingest(g model.Grid) (model.Columns, error) {
	header := g.Header()

	// 1) нормализуем шапку один раз
	raw := make([]string, len(header))
	keys := make([]string, len(header))
	for i, h := range header {
		raw[i] = strings.TrimSpace(h)
		keys[i] = NormalizeKey(h)
	}

	// 2) роли: первое совпадение слева
	cols := model.Columns{Code: model.Missing()}
	nameIdx := -1
	claimed := map[int]bool{}
	for i, k := range keys {
		switch roleKeys[k] {
		case roleName:
			if nameIdx < 0 {
				nameIdx = i
				cols.Name = model.Column{Name: raw[i], Index: i}
				claimed[i] = true
			}
		case roleCode:
			if _, ok := cols.Code.Get(); !ok {
				cols.Code = model.Resolved(model.Column{Name: raw[i], Index: i})
				claimed[i] = true
			}
		}
	}
	if nameIdx < 0 {
		return model.Columns{}, ErrMissingIdentityColumn
	}

	// 3) всё остальное непустое идёт в кандидаты в показатели
	cols.Metrics = make([]model.Column, 0, len(raw))
	for i, name := range raw {
		if claimed[i] || name == "" {
			continue
		}
		cols.Metrics = append(cols.Metrics, model.Column{Name: name, Index: i})
	}
	return cols, nil
}
