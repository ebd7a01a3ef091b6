package model

import "encoding/json"

// Grid — первый лист книги: строка 0 заголовки, дальше данные.
// Строки данных могут быть короче заголовка.
type Grid [][]string

// Cell returns "" for cells past the end of a short row.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// Header returns row 0, or nil for an empty grid.
func (g Grid) Header() []string {
	if len(g) == 0 {
		return nil
	}
	return g[0]
}

type Column struct {
	Name  string `json:"name"`  // заголовок как в файле (trim)
	Index int    `json:"index"` // 0-based
}

// ColumnRole is either Resolved(column) or Missing.
type ColumnRole struct {
	col Column
	ok  bool
}

func Resolved(c Column) ColumnRole { return ColumnRole{col: c, ok: true} }
func Missing() ColumnRole          { return ColumnRole{} }

func (r ColumnRole) Get() (Column, bool) { return r.col, r.ok }

func (r ColumnRole) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return []byte("null"), nil
	}
	return json.Marshal(r.col)
}

// Columns is the resolved header.
type Columns struct {
	Code    ColumnRole `json:"code"`
	Name    Column     `json:"name"`
	Metrics []Column   `json:"metrics"` // порядок слева направо
}

// Metric finds a candidate by display name; leftmost wins on duplicates.
func (c Columns) Metric(name string) (Column, bool) {
	for _, m := range c.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Column{}, false
}

type Record struct {
	Name   string   `json:"name"`
	Code   string   `json:"code,omitempty"`
	Value  *float64 `json:"value"` // nil: пусто или не число
	Metric string   `json:"metric"`
}

// Mapping holds one record per distinct raw name. byName identifies the
// record of a raw name; alias is the lookup table shared by raw names and
// normalized keys, where the latest row written under a string wins.
// With rows "TOLUCA" then "Toluca" the alias "TOLUCA" points at "Toluca".
type Mapping struct {
	records []Record
	byName  map[string]int
	alias   map[string]int
}

func NewMapping() *Mapping {
	return &Mapping{byName: map[string]int{}, alias: map[string]int{}}
}

// Put stores rec under its raw name and then under key. A later record with
// the same raw name replaces the earlier one in place.
func (m *Mapping) Put(rec Record, key string) {
	i, ok := m.byName[rec.Name]
	if ok {
		m.records[i] = rec
	} else {
		i = len(m.records)
		m.records = append(m.records, rec)
		m.byName[rec.Name] = i
	}
	m.alias[rec.Name] = i
	m.alias[key] = i
}

// ByName returns the record whose own raw name is name.
func (m *Mapping) ByName(name string) (Record, bool) {
	if m == nil {
		return Record{}, false
	}
	i, ok := m.byName[name]
	if !ok {
		return Record{}, false
	}
	return m.records[i], true
}

// Lookup returns the latest record written under s, as a raw name or as a
// normalized key.
func (m *Mapping) Lookup(s string) (Record, bool) {
	if m == nil {
		return Record{}, false
	}
	i, ok := m.alias[s]
	if !ok {
		return Record{}, false
	}
	return m.records[i], true
}

// Records returns the logical records in first-seen row order. Aliases are
// never repeated.
func (m *Mapping) Records() []Record {
	if m == nil {
		return nil
	}
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.records)
}

// Values returns every non-null value, one per logical record.
func (m *Mapping) Values() []float64 {
	if m == nil {
		return nil
	}
	out := make([]float64, 0, len(m.records))
	for _, r := range m.records {
		if r.Value != nil {
			out = append(out, *r.Value)
		}
	}
	return out
}

type Range struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Filter: состояние поиска/диапазона из UI. На Mapping не влияет.
type Filter struct {
	Search string   `json:"search"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
}

type RankedRecord struct {
	Record `yaml:",inline"`
	Fill float64 `json:"fill"` // ширина полосы, %
}

type Ranking struct {
	Top         []RankedRecord `json:"top"`
	Bottom      []RankedRecord `json:"bottom"`
	TopRange    Range          `json:"topRange"`
	BottomRange Range          `json:"bottomRange"`
}

type Summary struct {
	Count  int      `json:"count"`
	Nulls  int      `json:"nulls"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
}

// Binding is the computed style of one map region.
type Binding struct {
	ID      string  `json:"id"`
	Class   int     `json:"class"`
	Fill    string  `json:"fill"`
	Opacity float64 `json:"opacity"`
	Visible bool    `json:"visible"`
	Matched bool    `json:"matched"`
	Record  *Record `json:"record,omitempty"`
}

type Tooltip struct {
	Name   string  `json:"name"`
	Code   string  `json:"code,omitempty"`
	Metric string  `json:"metric"`
	Value  string  `json:"value"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type IngestStats struct {
	Rows        int `json:"rows"`        // строки данных (без шапки)
	Skipped     int `json:"skipped"`     // пустое имя
	Unparseable int `json:"unparseable"` // непустая ячейка, не число
}

// Float is a helper for optional numeric fields.
func Float(v float64) *float64 { return &v }

// близкое по написанию имя из таблицы
type Candidate struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"` // 0..1
}

// Suggestion lists likely spellings for a region the map could not bind.
type Suggestion struct {
	Region     string      `json:"region"`
	Candidates []Candidate `json:"candidates"`
}

// Unmatched is a diagnostic only; binding itself stays exact.
type Unmatched struct {
	Regions []Suggestion `json:"regions"`
	Orphans []string     `json:"orphans"` // строки таблицы без региона на карте
}
