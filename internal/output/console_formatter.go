package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxgraph/internal/domain"
)

// ConsoleFormatter renders a plain-text report: one summary block per
// scenario followed by the marginal-rate segments of the sweep, if any.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	fmt.Fprintf(&buf, "FEDERAL TAX ANALYSIS (%d)\n", report.Year)
	fmt.Fprintln(&buf, strings.Repeat("=", 64))

	if len(report.Summaries) == 0 {
		fmt.Fprintln(&buf, "\nNo scenarios evaluated.")
	}
	for i, s := range report.Summaries {
		fmt.Fprintln(&buf)
		writeSummary(&buf, i+1, s)
	}

	if report.Sweep != nil {
		writeSegments(&buf, report.Sweep)
	}
	return buf.Bytes(), nil
}

func writeSummary(buf *bytes.Buffer, index int, s domain.Summary) {
	title := s.Scenario.Name
	if title == "" {
		title = "Scenario"
	}
	senior := ""
	if s.Scenario.IsSenior {
		senior = ", 65+"
	}
	fmt.Fprintf(buf, "%d. %s (%s%s)\n", index, title, s.Scenario.FilingStatus, senior)
	fmt.Fprintln(buf, strings.Repeat("-", 48))

	fmt.Fprintln(buf, "INCOME:")
	fmt.Fprintf(buf, "  Wages:                  %s\n", FormatCurrency(s.Scenario.Wages))
	fmt.Fprintf(buf, "  Long-term Gains:        %s\n", FormatCurrency(s.Scenario.CapitalGains))
	fmt.Fprintf(buf, "  Social Security:        %s\n", FormatCurrency(s.Scenario.SocialSecurity))
	fmt.Fprintf(buf, "  Total Income:           %s\n", FormatCurrency(s.TotalIncome))

	fmt.Fprintln(buf, "DEDUCTIONS:")
	fmt.Fprintf(buf, "  Standard Deduction:     %s\n", FormatCurrency(s.StandardDeduction))
	if s.Scenario.IsSenior {
		fmt.Fprintf(buf, "  Senior Deduction Used:  %s\n", FormatCurrency(s.Breakdown.SeniorDeductionUsed))
	}
	fmt.Fprintf(buf, "  Taxable Social Security: %s\n", FormatCurrency(s.Breakdown.TaxableSocialSecurity))

	fmt.Fprintln(buf, "TAXES:")
	fmt.Fprintf(buf, "  Ordinary Tax:           %s (top bracket %s%%)\n", FormatCurrency(s.Breakdown.OrdinaryTax), s.Breakdown.TopOrdinaryRate.String())
	fmt.Fprintf(buf, "  Capital Gains Tax:      %s (marginal %s%%)\n", FormatCurrency(s.Breakdown.CapitalGainsTax), s.Breakdown.TopCapitalGainsRate.String())
	fmt.Fprintf(buf, "  NIIT:                   %s\n", FormatCurrency(s.Breakdown.NIIT))
	fmt.Fprintf(buf, "  TOTAL TAX:              %s\n", FormatCurrency(s.TotalTax))
	fmt.Fprintf(buf, "  Effective Rate:         %s\n", FormatPercentage(s.EffectiveRate))
	if s.Scenario.CapitalGains.IsPositive() {
		fmt.Fprintf(buf, "  LTCG Effective Rate:    %s\n", FormatPercentage(s.CapitalGainsEffectiveRate))
	}

	fmt.Fprintln(buf, "IRMAA:")
	fmt.Fprintf(buf, "  Status:                 %s (%s)\n", s.IRMAA.Risk, s.IRMAA.Tier)
	if s.NextIRMAAThreshold != nil {
		fmt.Fprintf(buf, "  Next Threshold:         %s (%s away)\n", FormatCurrency(*s.NextIRMAAThreshold), FormatCurrency(s.IRMAA.DistanceToNext))
	} else {
		fmt.Fprintln(buf, "  Next Threshold:         none")
	}
}

func writeSegments(buf *bytes.Buffer, sweep *domain.SweepResult) {
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "MARGINAL RATE BY WAGES ($0 - %s, %d points)\n", FormatCurrency(sweep.MaxIncome), len(sweep.Points))
	fmt.Fprintln(buf, strings.Repeat("-", 48))
	fmt.Fprintf(buf, "%-14s %-14s %8s\n", "From", "To", "Rate")
	for _, seg := range sweep.Segments {
		fmt.Fprintf(buf, "%-14s %-14s %7s%%\n", "$"+seg.StartIncome.StringFixed(0), "$"+seg.EndIncome.StringFixed(0), seg.Rate.StringFixed(1))
	}
	if sweep.NextIRMAA != nil {
		fmt.Fprintf(buf, "Next IRMAA threshold at %s\n", FormatCurrency(*sweep.NextIRMAA))
	}
}
