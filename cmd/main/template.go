package main

import (
	"os"

	"github.com/spf13/cobra"

	"choropleth-service/internal/fileio"
	"choropleth-service/internal/geometry"
)

func newTemplateCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the workbook template listing every map region",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := geometry.Load(a.cfg.GeometryPath)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := fileio.WriteTemplate(f, doc.IDs()); err != nil {
				f.Close()
				return err
			}
			a.log.Info().Str("out", out).Int("regions", len(doc.IDs())).Msg("template written")
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "BD_municipios.xlsx", "output path")
	return cmd
}
