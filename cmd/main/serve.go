package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"choropleth-service/internal/choropleth/service"
	"choropleth-service/internal/geometry"
	"choropleth-service/internal/workspace"
	serverhttp "choropleth-service/server/http"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(a)
		},
	}
}

func serve(a *app) error {
	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}
	cfg, logger := a.cfg, a.log

	doc, err := geometry.Load(cfg.GeometryPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.GeometryPath).Msg("load geometry")
		return err
	}
	store := workspace.NewStore(cfg.MaxSessions, cfg.SessionTTL, service.Palette(cfg.Palette), logger)
	r := serverhttp.NewRouter(cfg, logger, store, doc)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r, ReadHeaderTimeout: 10 * time.Second}
	logger.Info().
		Str("addr", cfg.Addr()).
		Int("regions", len(doc.IDs())).
		Msg("server starting")

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errc:
		logger.Error().Err(err).Msg("listen")
		return err
	case <-quit:
	}
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
	return nil
}
