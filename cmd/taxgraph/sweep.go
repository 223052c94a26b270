package main

import (
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/taxgraph/internal/calculation"
	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/rgehrsitz/taxgraph/internal/output"
)

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Decompose the marginal rate across a range of wages",
		Long: `Sample wages evenly from zero to --max-income, holding capital gains and
Social Security fixed, and report the marginal rate components at each point.

The pdf format draws the stacked marginal-rate chart and requires --out.`,
		Example: `  taxgraph sweep --status single --wages 90000 --ss 24000 --senior
  taxgraph sweep --wages 150000 --ltcg 40000 --format pdf --out chart.pdf
  taxgraph sweep --wages 80000 --format csv --points 200 > sweep.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := scenarioFromFlags(cmd)
			if err != nil {
				return err
			}
			req := calculation.SweepRequest{Scenario: scenario}
			if req.MaxIncome, err = decimalFlag(cmd, "max-income"); err != nil {
				return err
			}
			if req.Delta, err = decimalFlag(cmd, "delta"); err != nil {
				return err
			}
			req.Points, _ = cmd.Flags().GetInt("points")
			req.Workers, _ = cmd.Flags().GetInt("workers")
			req.ShowIRMAA, _ = cmd.Flags().GetBool("irmaa")

			engine, flush, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer flush()

			result, err := engine.Sweep(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeReport(cmd, &output.Report{
				Year:      engine.Table.Year(),
				Summaries: []domain.Summary{result.Summary},
				Sweep:     result,
			})
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().Int("points", calculation.DefaultSweepPoints, "Number of sampled wage levels")
	cmd.Flags().String("max-income", "", "Upper end of the wage range (default: max(2x total income, 150000))")
	cmd.Flags().String("delta", "1", "Income step used for the finite-difference marginal rate")
	cmd.Flags().Int("workers", 0, "Concurrent evaluation workers (default: number of CPUs)")
	cmd.Flags().Bool("irmaa", true, "Mark the next IRMAA threshold on the chart")
	cmd.Flags().StringP("out", "o", "", "Write the report to this file instead of stdout")
	return cmd
}
