package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"choropleth-service/internal/choropleth/model"
	"choropleth-service/internal/choropleth/service"
	"choropleth-service/internal/fileio"
	"choropleth-service/internal/utils"
	"choropleth-service/internal/workspace"
)

// общие флаги офлайн-команд
type dataFlags struct {
	data   string
	metric string
	search string
	min    string
	max    string
}

func (f dataFlags) filter() (model.Filter, error) {
	lo, ok := utils.ParseBound(f.min)
	if !ok {
		return model.Filter{}, fmt.Errorf("bad --min %q", f.min)
	}
	hi, ok := utils.ParseBound(f.max)
	if !ok {
		return model.Filter{}, fmt.Errorf("bad --max %q", f.max)
	}
	return model.Filter{Search: f.search, Min: lo, Max: hi}, nil
}

// load runs the same path as an upload: read, ingest, optional metric
// switch, filter.
func (a *app) load(f dataFlags) (*workspace.Workspace, *workspace.State, error) {
	if f.data == "" {
		return nil, nil, errors.New("--data is required")
	}
	flt, err := f.filter()
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(f.data)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	grid, err := fileio.ReadGrid(file, filepath.Base(f.data))
	if err != nil {
		return nil, nil, err
	}

	ws := workspace.New("cli", service.Palette(a.cfg.Palette), a.log)
	if _, err := ws.Ingest(filepath.Base(f.data), grid); err != nil {
		return nil, nil, err
	}
	if f.metric != "" {
		if _, err := ws.SelectMetric(f.metric); err != nil {
			return nil, nil, err
		}
	}
	return ws, ws.SetFilter(flt), nil
}
