package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/taxgraph/internal/domain"
)

// CSVSummarizer writes one row per sweep point, or one row per scenario
// summary when the report carries no sweep.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var rows [][]string
	if report.Sweep != nil {
		rows = sweepRows(report.Sweep)
	} else {
		rows = summaryRows(report.Summaries)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sweepRows(sweep *domain.SweepResult) [][]string {
	header := append([]string{"Wages", "TotalTax", "MarginalTotal"}, domain.ComponentNames...)
	rows := [][]string{header}
	for _, p := range sweep.Points {
		row := []string{
			p.Income.StringFixed(2),
			p.Breakdown.TotalTax().StringFixed(2),
			p.Marginal.Total.StringFixed(4),
		}
		for _, c := range p.Marginal.Components() {
			row = append(row, c.StringFixed(4))
		}
		rows = append(rows, row)
	}
	return rows
}

func summaryRows(summaries []domain.Summary) [][]string {
	rows := [][]string{{
		"Scenario", "FilingStatus", "Senior", "Wages", "CapitalGains", "SocialSecurity",
		"OrdinaryTax", "CapitalGainsTax", "NIIT", "TotalTax", "EffectiveRate",
		"TaxableSocialSecurity", "SeniorDeductionUsed", "IRMAARisk",
	}}
	for _, s := range summaries {
		senior := "false"
		if s.Scenario.IsSenior {
			senior = "true"
		}
		rows = append(rows, []string{
			s.Scenario.Name,
			s.Scenario.FilingStatus.Key(),
			senior,
			s.Scenario.Wages.StringFixed(2),
			s.Scenario.CapitalGains.StringFixed(2),
			s.Scenario.SocialSecurity.StringFixed(2),
			s.Breakdown.OrdinaryTax.StringFixed(2),
			s.Breakdown.CapitalGainsTax.StringFixed(2),
			s.Breakdown.NIIT.StringFixed(2),
			s.TotalTax.StringFixed(2),
			s.EffectiveRate.StringFixed(2),
			s.Breakdown.TaxableSocialSecurity.StringFixed(2),
			s.Breakdown.SeniorDeductionUsed.StringFixed(2),
			string(s.IRMAA.Risk),
		})
	}
	return rows
}
