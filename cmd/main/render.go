package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"choropleth-service/internal/choropleth/service"
	"choropleth-service/internal/geometry"
)

const defaultExportTimeout = 20 * time.Second

func newRenderCmd(a *app) *cobra.Command {
	var (
		df      dataFlags
		svgPath string
		pngPath string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a workbook onto the map as SVG and/or PNG",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, s, err := a.load(df)
			if err != nil {
				return err
			}
			doc, err := geometry.Load(a.cfg.GeometryPath)
			if err != nil {
				return err
			}
			bs, st := service.Bind(doc.IDs(), s.Mapping, s.Classifier, ws.Palette(), s.Filter)
			svg, err := doc.Render(bs)
			if err != nil {
				return err
			}

			timeout := a.cfg.ExportTimeout
			if timeout <= 0 {
				timeout = defaultExportTimeout
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			g, ctx := errgroup.WithContext(ctx)
			if svgPath != "" {
				g.Go(func() error { return os.WriteFile(svgPath, svg, 0o644) })
			}
			if pngPath != "" {
				g.Go(func() error {
					png, err := geometry.ExportPNG(ctx, svg, doc.ViewBox(), a.cfg.ExportScale)
					if err != nil {
						return err
					}
					return os.WriteFile(pngPath, png, 0o644)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			a.log.Info().
				Str("metric", s.Metric).
				Int("regions", st.Regions).
				Int("matched", st.Matched).
				Int("unresolved", st.Unresolved).
				Int("visible", st.Visible).
				Msg("rendered")
			return nil
		},
	}
	cmd.Flags().StringVar(&df.data, "data", "", "workbook (.xlsx, .xls, .csv)")
	cmd.Flags().StringVar(&df.metric, "metric", "", "metric column (default: MATRICULA or first)")
	cmd.Flags().StringVar(&df.search, "search", "", "name filter")
	cmd.Flags().StringVar(&df.min, "min", "", "lower bound")
	cmd.Flags().StringVar(&df.max, "max", "", "upper bound")
	cmd.Flags().StringVar(&svgPath, "svg", "mapa_interactivo.svg", "svg output, empty to skip")
	cmd.Flags().StringVar(&pngPath, "png", "", "png output, empty to skip")
	return cmd
}
