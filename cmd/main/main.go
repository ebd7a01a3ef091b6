package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"choropleth-service/internal/config"
)

// app: конфиг и логгер поднимаются один раз на все команды.
type app struct {
	cfgFile string
	cfg     config.Config
	log     zerolog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "choropleth",
		Short:         "Choropleth map service for municipal workbooks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = config.SetupLogger(cfg)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (yaml)")

	root.AddCommand(
		newServeCmd(a),
		newRenderCmd(a),
		newRankCmd(a),
		newTemplateCmd(a),
	)
	return root
}
