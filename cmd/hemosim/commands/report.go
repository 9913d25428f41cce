package commands

import (
	"context"
	"fmt"

	"hemosim/internal/distribution"
	"hemosim/internal/report"
	"hemosim/internal/simulation"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	reportPeriods int
	reportSeed    int64
	reportOut     string
	reportOpen    bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run a simulation and write a standalone HTML report",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportPeriods <= 0 {
			return fmt.Errorf("--periods must be greater than 0, got %d", reportPeriods)
		}

		tables := distribution.LoadTables(cfg.Sources, cfg.ClampTail)

		opts := simulation.Options{Workers: cfg.Workers}
		if cmd.Flags().Changed("seed") {
			opts.Seed = &reportSeed
		}

		engine := simulation.NewEngine(tables, opts)
		results, err := engine.Run(context.Background(), reportPeriods)
		if err != nil {
			return err
		}

		data := report.Build(tables, results, cfg.Colors)
		if err := report.Write(reportOut, data); err != nil {
			return err
		}
		log.Info().Str("path", reportOut).Int("periods", reportPeriods).Msg("Report written")
		fmt.Printf("Report written to %s\n", reportOut)

		if reportOpen {
			if err := browser.OpenFile(reportOut); err != nil {
				log.Warn().Err(err).Msg("Failed to open report in browser")
			}
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().IntVarP(&reportPeriods, "periods", "p", 0, "number of periods to simulate (required, > 0)")
	reportCmd.Flags().Int64Var(&reportSeed, "seed", 0, "seed for a reproducible run")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "hemosim-report.html", "output path for the HTML report")
	reportCmd.Flags().BoolVar(&reportOpen, "open", false, "open the report in the default browser")
	reportCmd.MarkFlagRequired("periods")
	rootCmd.AddCommand(reportCmd)
}
