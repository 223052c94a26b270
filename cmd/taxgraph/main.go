package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/taxgraph/internal/calculation"
	"github.com/rgehrsitz/taxgraph/internal/config"
	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/rgehrsitz/taxgraph/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Environment variables read from the process or a .env file
const (
	envSchedule = "TAXGRAPH_SCHEDULE"
	envFormat   = "TAXGRAPH_FORMAT"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taxgraph",
		Short: "Federal income tax and marginal rate analyzer",
		Long: `Evaluate 2026 federal income tax for wages, long-term capital gains and
Social Security benefits, and decompose the marginal rate into its ordinary,
capital gains, Social Security, senior deduction and NIIT components.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyEnvDefaults(cmd)
		},
	}

	root.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	root.PersistentFlags().String("schedule", "", "Path to a schedule YAML file (default: built-in 2026 schedule, or $"+envSchedule+")")
	root.PersistentFlags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")

	root.AddCommand(evaluateCmd())
	root.AddCommand(sweepCmd())
	root.AddCommand(batchCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(tuiCmd())
	root.AddCommand(versionCmd())
	return root
}

// applyEnvDefaults loads .env when present and fills unset flags from the environment
func applyEnvDefaults(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	for flag, env := range map[string]string{"schedule": envSchedule, "format": envFormat} {
		f := cmd.Flags().Lookup(flag)
		if f == nil || f.Changed {
			continue
		}
		if v, ok := os.LookupEnv(env); ok && v != "" {
			if err := f.Value.Set(v); err != nil {
				return fmt.Errorf("invalid %s: %w", env, err)
			}
		}
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxgraph %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Version
	}
	return ""
}

// newLogger returns a development logger when debug is set and a no-op logger otherwise
func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// newEngine loads the schedule table named by --schedule and wires the logger
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, func(), error) {
	debugMode, _ := cmd.Flags().GetBool("debug")
	logger, err := newLogger(debugMode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	sugar := logger.Sugar()

	scheduleFile, _ := cmd.Flags().GetString("schedule")
	table, err := config.LoadTable(scheduleFile)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	if scheduleFile != "" {
		sugar.Debugf("loaded %d schedule from %s", table.Year(), scheduleFile)
	}

	engine := calculation.NewCalculationEngine(table)
	engine.SetLogger(sugar)
	return engine, func() { _ = logger.Sync() }, nil
}

// addScenarioFlags registers the flags describing a single scenario
func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("status", "s", "married_filing_jointly", "Filing status (single, married_filing_jointly)")
	cmd.Flags().String("wages", "0", "Annual wages and other ordinary income")
	cmd.Flags().String("ltcg", "0", "Long-term capital gains and qualified dividends")
	cmd.Flags().String("ss", "0", "Annual Social Security benefits")
	cmd.Flags().Bool("senior", false, "Taxpayer is 65 or older")
}

func scenarioFromFlags(cmd *cobra.Command) (domain.Scenario, error) {
	var s domain.Scenario
	statusStr, _ := cmd.Flags().GetString("status")
	status, err := domain.ParseFilingStatus(statusStr)
	if err != nil {
		return s, err
	}
	s.FilingStatus = status
	s.IsSenior, _ = cmd.Flags().GetBool("senior")

	for flag, dst := range map[string]*decimal.Decimal{"wages": &s.Wages, "ltcg": &s.CapitalGains, "ss": &s.SocialSecurity} {
		if *dst, err = decimalFlag(cmd, flag); err != nil {
			return s, err
		}
	}
	return s, s.Validate()
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	raw = strings.NewReplacer(",", "", "$", "").Replace(strings.TrimSpace(raw))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return d, nil
}

// writeReport renders the report in the --format format to --out, or to stdout
func writeReport(cmd *cobra.Command, report *output.Report) error {
	format, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %s; aliases: %s)", format,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", "))
	}

	out := ""
	if cmd.Flags().Lookup("out") != nil {
		out, _ = cmd.Flags().GetString("out")
	}
	if out == "" && f.Name() == "pdf" {
		return fmt.Errorf("--out is required for pdf output")
	}

	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	if out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", out)
	return nil
}

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the federal tax of one scenario",
		Example: `  taxgraph evaluate --status single --wages 100000
  taxgraph evaluate --wages 60000 --ss 30000 --senior --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := scenarioFromFlags(cmd)
			if err != nil {
				return err
			}
			engine, flush, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer flush()

			summary, err := engine.Summarize(scenario)
			if err != nil {
				return err
			}
			return writeReport(cmd, &output.Report{Year: engine.Table.Year(), Summaries: []domain.Summary{*summary}})
		},
	}
	addScenarioFlags(cmd)
	return cmd
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [scenarios-file]",
		Short: "Evaluate every scenario in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := config.NewScheduleParser().LoadScenarios(args[0])
			if err != nil {
				return err
			}
			engine, flush, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer flush()

			report := &output.Report{Year: engine.Table.Year(), Summaries: make([]domain.Summary, 0, len(scenarios))}
			for i, scenario := range scenarios {
				summary, err := engine.Summarize(scenario)
				if err != nil {
					return fmt.Errorf("scenario %d (%s): %w", i, scenario.Name, err)
				}
				report.Summaries = append(report.Summaries, *summary)
			}
			return writeReport(cmd, report)
		},
	}
	cmd.Flags().StringP("out", "o", "", "Write the report to this file instead of stdout")
	return cmd
}
