package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/taxgraph/internal/config"
	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/rgehrsitz/taxgraph/internal/output"
)

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the tax schedule in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, flush, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer flush()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "FEDERAL TAX SCHEDULE (%d)\n", engine.Table.Year())
			for _, status := range engine.Table.Statuses() {
				schedule, err := engine.Schedule(status)
				if err != nil {
					return err
				}
				printSchedule(w, status, schedule)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [schedule-file]",
		Short: "Validate a schedule YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := config.NewScheduleParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schedule file %s is valid (%d, %d filing statuses)\n", args[0], table.Year(), len(table.Statuses()))
			return nil
		},
	})
	return cmd
}

func printSchedule(w io.Writer, status domain.FilingStatus, s domain.TaxSchedule) {
	fmt.Fprintf(w, "\n%s\n%s\n", strings.ToUpper(status.String()), strings.Repeat("=", 40))
	fmt.Fprintf(w, "Standard Deduction:     %s\n", output.FormatCurrency(s.StandardDeduction))
	fmt.Fprintf(w, "Senior Deduction:       %s (phase-out from %s)\n", output.FormatCurrency(s.SeniorDeduction), output.FormatCurrency(s.SeniorPhaseoutStart))
	fmt.Fprintf(w, "SS Thresholds:          %s / %s\n", output.FormatCurrency(s.SocialSecurityThresholds.Threshold1), output.FormatCurrency(s.SocialSecurityThresholds.Threshold2))
	fmt.Fprintf(w, "NIIT Threshold:         %s\n", output.FormatCurrency(s.NIITThreshold))
	fmt.Fprintf(w, "IRMAA Thresholds:       %s\n", strings.Join(lo.Map(s.IRMAAThresholds, func(d decimal.Decimal, _ int) string {
		return output.FormatCurrency(d)
	}), ", "))

	printBrackets(w, "Ordinary Brackets", s.OrdinaryBrackets)
	printBrackets(w, "Capital Gains Brackets", s.CapitalGainsBrackets)
}

func printBrackets(w io.Writer, title string, brackets []domain.TaxBracket) {
	fmt.Fprintf(w, "%s:\n", title)
	for i, b := range brackets {
		upper := output.FormatCurrency(b.Max)
		if i == len(brackets)-1 {
			upper = "and up"
		}
		fmt.Fprintf(w, "  %6s%%  %14s - %s\n", b.Rate.String(), output.FormatCurrency(b.Min), upper)
	}
}
