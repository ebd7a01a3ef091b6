package handlers

import (
	"encoding/json"
	"net/http"

	"choropleth-service/internal/workspace"
)

func Health(store *workspace.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "sessions": store.Len()})
	}
}
