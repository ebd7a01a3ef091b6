package workspace

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"choropleth-service/internal/choropleth/model"
	"choropleth-service/internal/choropleth/service"
)

// State is an immutable snapshot of one map view. Every change builds a new
// State and swaps it in whole.
type State struct {
	Generation uint64
	Source     string // имя загруженного файла
	Grid       model.Grid
	Columns    model.Columns
	Metric     string // "" если показателя нет
	Mapping    *model.Mapping
	Range      model.Range
	Stats      model.IngestStats
	Classifier *service.Classifier
	Ranking    model.Ranking
	Filter     model.Filter
}

// Loaded reports whether a workbook has been ingested.
func (s *State) Loaded() bool { return s.Grid != nil }

// Workspace holds the interactive state of one session.
type Workspace struct {
	ID      string
	palette service.Palette
	log     zerolog.Logger

	mu    sync.RWMutex
	state *State
	gen   uint64

	// один слот подсказки на сессию, живёт дольше любого State
	Hover service.Hover
}

func New(id string, palette service.Palette, log zerolog.Logger) *Workspace {
	w := &Workspace{ID: id, palette: palette, log: log.With().Str("session", id).Logger()}
	w.state = w.derive(&State{}, "")
	return w
}

func (w *Workspace) Palette() service.Palette { return w.palette }

// Snapshot returns the current state; callers must not modify it.
func (w *Workspace) Snapshot() *State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Ingest resolves columns of a freshly read grid and replaces all derived
// state at once. The grid is prepared before taking the lock, so the last
// ingestion to complete wins. On error nothing is committed.
func (w *Workspace) Ingest(source string, g model.Grid) (*State, error) {
	cols, err := service.Ingest(g)
	if err != nil {
		w.log.Warn().Err(err).Str("source", source).Msg("ingest rejected")
		return nil, err
	}
	next := &State{Source: source, Grid: g, Columns: cols}
	metric := ""
	if c, ok := service.DefaultMetric(cols); ok {
		metric = c.Name
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	next.Filter = w.state.Filter
	next = w.derive(next, metric)
	w.state = next
	w.log.Info().
		Str("source", source).
		Uint64("gen", next.Generation).
		Int("rows", next.Stats.Rows).
		Int("skipped", next.Stats.Skipped).
		Int("unparseable", next.Stats.Unparseable).
		Int("metrics", len(cols.Metrics)).
		Str("metric", metric).
		Msg("ingest committed")
	return next, nil
}

// SelectMetric rebuilds mapping, classifier and ranking for another
// candidate column. An unknown name leaves the state untouched.
func (w *Workspace) SelectMetric(name string) (*State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cur := w.state
	if _, ok := cur.Columns.Metric(name); !ok {
		return nil, fmt.Errorf("%w: %q", service.ErrUnknownMetric, name)
	}
	next := *cur
	w.state = w.derive(&next, name)
	w.log.Debug().Str("metric", name).Uint64("gen", w.state.Generation).Msg("metric selected")
	return w.state, nil
}

// SetFilter only changes visibility; the mapping is shared as is.
func (w *Workspace) SetFilter(f model.Filter) *State {
	w.mu.Lock()
	defer w.mu.Unlock()
	next := *w.state
	w.gen++
	next.Generation = w.gen
	next.Filter = f
	w.state = &next
	return w.state
}

// derive recomputes everything downstream of the grid and metric. Must be
// called with mu held (or before w is shared).
func (w *Workspace) derive(s *State, metric string) *State {
	w.gen++
	s.Generation = w.gen
	s.Metric = metric
	s.Mapping = model.NewMapping()
	s.Range = model.Range{}
	s.Stats = service.CountRows(s.Grid, s.Columns)
	if metric != "" {
		// метрика уже проверена, ошибка невозможна
		if m, r, st, err := service.Project(s.Grid, s.Columns, metric); err == nil {
			s.Mapping, s.Range, s.Stats = m, r, st
		}
	}
	s.Classifier = service.NewClassifier(s.Mapping.Values(), len(w.palette))
	s.Ranking = service.Rank(s.Mapping)
	return s
}
