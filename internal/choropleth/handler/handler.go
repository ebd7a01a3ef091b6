package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"choropleth-service/internal/choropleth/model"
	"choropleth-service/internal/choropleth/service"
	"choropleth-service/internal/fileio"
	"choropleth-service/internal/geometry"
)

func CreateSession(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := e.Store.Create()
		log := e.reqLog(r)
		log.Info().Str("session", ws.ID).Msg("session created")
		writeJSON(w, http.StatusCreated, viewOf(ws, ws.Snapshot()))
	}
}

func GetSession(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := e.session(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, viewOf(ws, ws.Snapshot()))
	}
}

func DeleteSession(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := e.session(w, r)
		if !ok {
			return
		}
		e.Store.Delete(ws.ID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// Upload принимает книгу (multipart, поле "file") и целиком заменяет
// состояние сессии. При ошибке прежнее состояние остаётся.
func Upload(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := e.reqLog(r)
		ws, ok := e.session(w, r)
		if !ok {
			return
		}

		if err := r.ParseMultipartForm(int64(e.Cfg.MaxUploadMB) << 20); err != nil {
			writeError(w, statusFor(err), "bad multipart form: "+err.Error())
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file: "+err.Error())
			return
		}
		defer file.Close()

		grid, err := fileio.ReadGrid(file, header.Filename)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		s, err := ws.Ingest(header.Filename, grid)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}

		log.Info().
			Str("session", ws.ID).
			Str("file", header.Filename).
			Int("rows", s.Stats.Rows).
			Dur("elapsed", time.Since(start)).
			Msg("dataset loaded")
		writeJSON(w, http.StatusOK, viewOf(ws, s))
	}
}

type metricsView struct {
	Metric  string         `json:"metric"`
	Columns []model.Column `json:"columns"`
}

func Metrics(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := e.session(w, r)
		if !ok {
			return
		}
		s := ws.Snapshot()
		cols := s.Columns.Metrics
		if cols == nil {
			cols = []model.Column{}
		}
		writeJSON(w, http.StatusOK, metricsView{Metric: s.Metric, Columns: cols})
	}
}

func SelectMetric(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := e.session(w, r)
		if !ok {
			return
		}
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		s, err := ws.SelectMetric(req.Name)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, viewOf(ws, s))
	}
}

func SetFilter(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := e.session(w, r)
		if !ok {
			return
		}
		var f model.Filter
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, viewOf(ws, ws.SetFilter(f)))
	}
}

type regionsView struct {
	Generation uint64            `json:"generation"`
	Metric     string            `json:"metric"`
	Palette    service.Palette   `json:"palette"`
	Stats      service.BindStats `json:"stats"`
	Regions    []model.Binding   `json:"regions"`
}

func Regions(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := e.session(w, r)
		if !ok {
			return
		}
		s := ws.Snapshot()
		bs, st := e.bind(ws, s)
		writeJSON(w, http.StatusOK, regionsView{
			Generation: s.Generation,
			Metric:     s.Metric,
			Palette:    ws.Palette(),
			Stats:      st,
			Regions:    bs,
		})
	}
}

type rankingView struct {
	Metric  string        `json:"metric"`
	Summary model.Summary `json:"summary"`
	model.Ranking
}

func Ranking(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := e.session(w, r)
		if !ok {
			return
		}
		s := ws.Snapshot()
		writeJSON(w, http.StatusOK, rankingView{
			Metric:  s.Metric,
			Summary: service.Summarize(s.Mapping),
			Ranking: s.Ranking,
		})
	}
}

type hoverRequest struct {
	Event  string  `json:"event"`
	Region string  `json:"region"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type hoverView struct {
	Active  bool           `json:"active"`
	Tooltip *model.Tooltip `json:"tooltip,omitempty"`
}

// Hover drives the session's single tooltip slot.
func Hover(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := e.session(w, r)
		if !ok {
			return
		}
		var req hoverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}

		switch req.Event {
		case service.HoverEnter:
			tip := ws.Hover.Enter(ws.Snapshot().Mapping, req.Region, req.X, req.Y)
			writeJSON(w, http.StatusOK, hoverView{Active: true, Tooltip: &tip})
		case service.HoverMove:
			tip, active := ws.Hover.Move(req.X, req.Y)
			v := hoverView{Active: active}
			if active {
				v.Tooltip = &tip
			}
			writeJSON(w, http.StatusOK, v)
		case service.HoverLeave:
			ws.Hover.Leave()
			writeJSON(w, http.StatusOK, hoverView{})
		default:
			writeError(w, http.StatusBadRequest, "unknown hover event: "+req.Event)
		}
	}
}

func MapSVG(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := e.session(w, r)
		if !ok {
			return
		}
		bs, _ := e.bind(ws, ws.Snapshot())
		svg, err := e.Map.Render(bs)
		if err != nil {
			log := e.reqLog(r)
			log.Error().Err(err).Msg("render svg")
			writeError(w, http.StatusInternalServerError, "render failed")
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(svg)
	}
}

const defaultExportTimeout = 20 * time.Second

// MapPNG rasterizes the current snapshot. It only reads state, so a failed
// or slow export never affects the interactive map.
func MapPNG(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := e.reqLog(r)
		ws, ok := e.session(w, r)
		if !ok {
			return
		}
		bs, _ := e.bind(ws, ws.Snapshot())
		svg, err := e.Map.Render(bs)
		if err != nil {
			log.Error().Err(err).Msg("render svg")
			writeError(w, http.StatusInternalServerError, "render failed")
			return
		}

		timeout := e.Cfg.ExportTimeout
		if timeout <= 0 {
			timeout = defaultExportTimeout
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		png, err := geometry.ExportPNG(ctx, svg, e.Map.ViewBox(), e.Cfg.ExportScale)
		if err != nil {
			log.Error().Err(err).Str("session", ws.ID).Msg("export png")
			status := http.StatusInternalServerError
			if errors.Is(err, context.DeadlineExceeded) {
				status = http.StatusGatewayTimeout
			}
			writeError(w, status, "export failed")
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `attachment; filename="mapa_interactivo.png"`)
		_, _ = w.Write(png)
	}
}

// Template отдаёт пустую книгу с именами регионов карты.
func Template(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="BD_municipios.xlsx"`)
		if err := fileio.WriteTemplate(w, e.Map.IDs()); err != nil {
			log := e.reqLog(r)
			log.Error().Err(err).Msg("write template")
		}
	}
}

// Unmatched lists map regions that found no row (with near-miss names from
// the workbook) and rows that no region resolves to.
func Unmatched(e *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := e.session(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, service.Unmatched(e.Map.IDs(), ws.Snapshot().Mapping))
	}
}
