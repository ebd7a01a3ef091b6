package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	mapHnd "choropleth-service/internal/choropleth/handler"
	"choropleth-service/internal/config"
	"choropleth-service/internal/geometry"
	"choropleth-service/internal/middleware"
	"choropleth-service/internal/workspace"
	"choropleth-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, store *workspace.Store, doc *geometry.Document) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handlers.Health(store))

	env := &mapHnd.Env{Cfg: cfg, Log: logger, Store: store, Map: doc}
	r.Get("/template.xlsx", mapHnd.Template(env))

	r.Post("/sessions", mapHnd.CreateSession(env))
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", mapHnd.GetSession(env))
		r.Delete("/", mapHnd.DeleteSession(env))
		r.Post("/dataset", mapHnd.Upload(env))
		r.Get("/metrics", mapHnd.Metrics(env))
		r.Put("/metric", mapHnd.SelectMetric(env))
		r.Put("/filter", mapHnd.SetFilter(env))
		r.Get("/regions", mapHnd.Regions(env))
		r.Get("/ranking", mapHnd.Ranking(env))
		r.Get("/unmatched", mapHnd.Unmatched(env))
		r.Post("/hover", mapHnd.Hover(env))
		r.Get("/map.svg", mapHnd.MapSVG(env))
		r.Get("/map.png", mapHnd.MapPNG(env))
	})

	return r
}
