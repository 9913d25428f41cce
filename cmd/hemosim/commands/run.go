package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"hemosim/internal/distribution"
	"hemosim/internal/simulation"
	"hemosim/internal/stats"

	"github.com/spf13/cobra"
)

var (
	runPeriods int
	runSeed    int64
	runWorkers int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation and print the tables to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runPeriods <= 0 {
			return fmt.Errorf("--periods must be greater than 0, got %d", runPeriods)
		}

		tables := distribution.LoadTables(cfg.Sources, cfg.ClampTail)

		opts := simulation.Options{
			Workers: runWorkers,
			Progress: func(fraction float64) {
				fmt.Fprintf(os.Stderr, "\rSimulating... %3.0f%%", fraction*100)
			},
		}
		if cmd.Flags().Changed("seed") {
			opts.Seed = &runSeed
		}

		engine := simulation.NewEngine(tables, opts)
		results, err := engine.Run(context.Background(), runPeriods)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr)

		printDistributionTables(tables)
		printResults(results)
		printSummary(results)
		printInsights(results)
		return nil
	},
}

func printDistributionTables(tables map[distribution.BloodType]*distribution.Table) {
	for _, t := range distribution.BloodTypes() {
		table := tables[t]
		if table.Empty() {
			fmt.Printf("\nDistribution table for blood type %s: no data\n", t)
			continue
		}
		fmt.Printf("\nDistribution table for blood type %s (%s)\n", t, table.Source)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "No\tInterval\tFreq\tProb\tCum Prob\tCum %\tMidpoint\tBand")
		for _, row := range table.DisplayRows() {
			mid := "-"
			if row.Midpoint != nil {
				mid = fmt.Sprintf("%d", *row.Midpoint)
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%.4f\t%.4f\t%.2f\t%s\t%s\n",
				row.No, row.Label, row.Frequency,
				row.Probability, row.CumulativeProbability, row.CumulativePercent,
				mid, row.Band)
		}
		w.Flush()
	}
}

func printResults(results simulation.ResultTable) {
	fmt.Printf("\nSimulation results (%d periods)\n", len(results))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Period\tDraw A\tDraw B\tDraw AB\tDraw O\tUsage A\tUsage B\tUsage AB\tUsage O\tTotal\tA%\tB%\tAB%\tO%")
	for _, p := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.2f\t%.2f\t%.2f\t%.2f\n",
			p.Index,
			p.Draws[distribution.TypeA], p.Draws[distribution.TypeB], p.Draws[distribution.TypeAB], p.Draws[distribution.TypeO],
			p.Values[distribution.TypeA], p.Values[distribution.TypeB], p.Values[distribution.TypeAB], p.Values[distribution.TypeO],
			p.Total,
			p.Shares[distribution.TypeA], p.Shares[distribution.TypeB], p.Shares[distribution.TypeAB], p.Shares[distribution.TypeO])
	}
	w.Flush()
}

func printSummary(results simulation.ResultTable) {
	fmt.Println("\nSummary statistics (units per period)")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Series\tMean\tMedian\tStd Dev\tMin\tMax")
	for _, row := range stats.Summarize(results) {
		std := "n/a"
		if row.Std != nil {
			std = fmt.Sprintf("%.2f", *row.Std)
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.1f\t%s\t%d\t%d\n", row.Series, row.Mean, row.Median, std, row.Min, row.Max)
	}
	w.Flush()

	if max, min, ok := stats.Extremes(results); ok {
		fmt.Printf("\nPeak period: %d (total %d units)\n", max.Index, max.Total)
		fmt.Printf("Trough period: %d (total %d units)\n", min.Index, min.Total)
	}
}

func printInsights(results simulation.ResultTable) {
	ins, ok := stats.BuildInsights(results)
	if !ok {
		fmt.Println("\nNo simulation data for insights.")
		return
	}
	fmt.Println("\nInsights")
	for _, line := range ins.Lines() {
		fmt.Println("  - " + line)
	}
}

func init() {
	runCmd.Flags().IntVarP(&runPeriods, "periods", "p", 0, "number of periods to simulate (required, > 0)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "seed for a reproducible run")
	runCmd.Flags().IntVar(&runWorkers, "workers", 1, "parallel workers for period aggregation")
	runCmd.MarkFlagRequired("periods")
	rootCmd.AddCommand(runCmd)
}
