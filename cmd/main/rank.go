package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"choropleth-service/internal/choropleth/model"
	"choropleth-service/internal/choropleth/service"
)

type rankReport struct {
	Source  string               `json:"source" yaml:"source"`
	Metric  string               `json:"metric" yaml:"metric"`
	Stats   model.IngestStats    `json:"stats" yaml:"stats"`
	Summary model.Summary        `json:"summary" yaml:"summary"`
	Top     []model.RankedRecord `json:"top" yaml:"top"`
	Bottom  []model.RankedRecord `json:"bottom" yaml:"bottom"`
}

func newRankCmd(a *app) *cobra.Command {
	var (
		df     dataFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the top and bottom municipalities for a metric",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, s, err := a.load(df)
			if err != nil {
				return err
			}
			rep := rankReport{
				Source:  s.Source,
				Metric:  s.Metric,
				Stats:   s.Stats,
				Summary: service.Summarize(s.Mapping),
				Top:     s.Ranking.Top,
				Bottom:  s.Ranking.Bottom,
			}
			return writeReport(cmd.OutOrStdout(), format, rep)
		},
	}
	cmd.Flags().StringVar(&df.data, "data", "", "workbook (.xlsx, .xls, .csv)")
	cmd.Flags().StringVar(&df.metric, "metric", "", "metric column (default: MATRICULA or first)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json|yaml")
	return cmd
}

func writeReport(w io.Writer, format string, rep rankReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(rep)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
