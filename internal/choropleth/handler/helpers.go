package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"choropleth-service/internal/choropleth/model"
	"choropleth-service/internal/choropleth/service"
	"choropleth-service/internal/config"
	"choropleth-service/internal/fileio"
	"choropleth-service/internal/geometry"
	"choropleth-service/internal/middleware"
	"choropleth-service/internal/workspace"
)

// Env holds what every map handler needs.
type Env struct {
	Cfg   config.Config
	Log   zerolog.Logger
	Store *workspace.Store
	Map   *geometry.Document
}

// reqLog привязывает rid к логгеру запроса.
func (e *Env) reqLog(r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return e.Log.With().Str("rid", rid).Logger()
	}
	return e.Log
}

// session резолвит {id} из пути; при промахе сам отвечает 404.
func (e *Env) session(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	ws, ok := e.Store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return ws, true
}

func (e *Env) bind(ws *workspace.Workspace, s *workspace.State) ([]model.Binding, service.BindStats) {
	return service.Bind(e.Map.IDs(), s.Mapping, s.Classifier, ws.Palette(), s.Filter)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor сопоставляет ошибки домена с HTTP-кодами.
func statusFor(err error) int {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, fileio.ErrUnsupportedFile):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrMissingIdentityColumn):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

type stateView struct {
	Session    string            `json:"session"`
	Generation uint64            `json:"generation"`
	Loaded     bool              `json:"loaded"`
	Source     string            `json:"source,omitempty"`
	Columns    *model.Columns    `json:"columns"`
	Metric     string            `json:"metric"`
	Range      model.Range       `json:"range"`
	Stats      model.IngestStats `json:"stats"`
	Filter     model.Filter      `json:"filter"`
}

func viewOf(ws *workspace.Workspace, s *workspace.State) stateView {
	v := stateView{
		Session:    ws.ID,
		Generation: s.Generation,
		Loaded:     s.Loaded(),
		Source:     s.Source,
		Metric:     s.Metric,
		Range:      s.Range,
		Stats:      s.Stats,
		Filter:     s.Filter,
	}
	if s.Loaded() {
		cols := s.Columns
		v.Columns = &cols
	}
	return v
}
