package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choropleth-service/internal/choropleth/model"
	"choropleth-service/internal/choropleth/service"
	"choropleth-service/internal/fileio"
	"choropleth-service/internal/geometry"
	"choropleth-service/internal/workspace"
)

func newEnv(t *testing.T) *Env {
	t.Helper()
	doc, err := geometry.Load("")
	require.NoError(t, err)
	return &Env{
		Log:   zerolog.Nop(),
		Store: workspace.NewStore(4, time.Hour, service.DefaultPalette, zerolog.Nop()),
		Map:   doc,
	}
}

// call invokes h with {id} bound the same way chi does.
func call(h http.HandlerFunc, method, id string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, "/sessions/"+id, &buf)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func loaded(t *testing.T, e *Env) *workspace.Workspace {
	t.Helper()
	ws := e.Store.Create()
	_, err := ws.Ingest("t.csv", model.Grid{
		{"NOMBRE DEL MUNICIPIO", "MATRICULA"},
		{"Toluca", "10"},
		{"Metepec", "20"},
	})
	require.NoError(t, err)
	return ws
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge},
		{fmt.Errorf("read: %w", fileio.ErrUnsupportedFile), http.StatusUnsupportedMediaType},
		{fmt.Errorf("ingest: %w", service.ErrMissingIdentityColumn), http.StatusUnprocessableEntity},
		{service.ErrUnknownMetric, http.StatusBadRequest},
		{errors.New("boom"), http.StatusBadRequest},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusFor(c.err), c.err.Error())
	}
}

func TestGetSessionNotFound(t *testing.T) {
	e := newEnv(t)
	rec := call(GetSession(e), http.MethodGet, "missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"session not found"}`, rec.Body.String())
}

func TestEmptySessionView(t *testing.T) {
	e := newEnv(t)
	ws := e.Store.Create()

	rec := call(GetSession(e), http.MethodGet, ws.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var v map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, false, v["loaded"])
	assert.Nil(t, v["columns"])

	rec = call(Metrics(e), http.MethodGet, ws.ID, nil)
	assert.JSONEq(t, `{"metric":"","columns":[]}`, rec.Body.String())

	rec = call(Ranking(e), http.MethodGet, ws.ID, nil)
	var rv rankingView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rv))
	assert.Empty(t, rv.Top)
	assert.Empty(t, rv.Bottom)
}

func TestRegionsUnresolvedAreBase(t *testing.T) {
	e := newEnv(t)
	ws := loaded(t, e)

	rec := call(Regions(e), http.MethodGet, ws.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var v regionsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "MATRICULA", v.Metric)
	assert.Equal(t, 2, v.Stats.Matched)
	assert.Equal(t, 5, v.Stats.Unresolved)
	for _, b := range v.Regions {
		switch b.ID {
		case "Metepec":
			assert.Equal(t, service.DefaultPalette[11], b.Fill)
		case "Toluca":
			assert.True(t, b.Matched)
		default:
			assert.False(t, b.Matched)
			assert.Equal(t, service.DefaultPalette[0], b.Fill)
		}
	}
}

func TestSelectMetricBadBody(t *testing.T) {
	e := newEnv(t)
	ws := loaded(t, e)
	req := httptest.NewRequest(http.MethodPut, "/", bytes.NewBufferString("{"))
	rc := chi.NewRouteContext()
	rc.URLParams.Add("id", ws.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	rec := httptest.NewRecorder()
	SelectMetric(e)(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MATRICULA", ws.Snapshot().Metric)
}

func TestHoverLeaveClearsSlot(t *testing.T) {
	e := newEnv(t)
	ws := loaded(t, e)

	rec := call(Hover(e), http.MethodPost, ws.ID, hoverRequest{Event: service.HoverEnter, Region: "Toluca", X: 1, Y: 2})
	require.Equal(t, http.StatusOK, rec.Code)
	var v hoverView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	require.NotNil(t, v.Tooltip)
	assert.Equal(t, "10", v.Tooltip.Value)
	assert.Equal(t, "MATRICULA", v.Tooltip.Metric)

	call(Hover(e), http.MethodPost, ws.ID, hoverRequest{Event: service.HoverLeave})
	rec = call(Hover(e), http.MethodPost, ws.ID, hoverRequest{Event: service.HoverMove, X: 3, Y: 3})
	assert.JSONEq(t, `{"active":false}`, rec.Body.String())
}

func TestMapPNGHeaders(t *testing.T) {
	e := newEnv(t)
	e.Cfg.ExportScale = 1
	ws := loaded(t, e)

	rec := call(MapPNG(e), http.MethodGet, ws.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "mapa_interactivo.png")
}

func TestUnmatchedSuggestions(t *testing.T) {
	e := newEnv(t)
	ws := e.Store.Create()
	_, err := ws.Ingest("t.csv", model.Grid{
		{"NOMBRE DEL MUNICIPIO", "MATRICULA"},
		{"Toluca", "10"},
		{"Metepek", "20"},
	})
	require.NoError(t, err)

	rec := call(Unmatched(e), http.MethodGet, ws.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var u model.Unmatched
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Len(t, u.Regions, 6)
	assert.Equal(t, []string{"Metepek"}, u.Orphans)
	assert.Equal(t, "Metepec", u.Regions[0].Region)
	require.NotEmpty(t, u.Regions[0].Candidates)
	assert.Equal(t, "Metepek", u.Regions[0].Candidates[0].Name)
}
