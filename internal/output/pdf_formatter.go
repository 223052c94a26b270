package output

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/taxgraph/internal/domain"
)

// ErrNoSweep is returned by formatters that can only render a sweep
var ErrNoSweep = errors.New("report has no marginal-rate sweep")

// PDFFormatter draws the stacked marginal-rate chart of a sweep on a landscape
// Letter page, followed by the scenario summary.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

// component fill colours in domain.ComponentNames order
var componentColors = [][3]int{
	{52, 152, 219}, // ordinary
	{46, 204, 113}, // LTCG bump
	{230, 126, 34}, // social security
	{155, 89, 182}, // senior phase-out
	{231, 76, 60},  // NIIT
}

const (
	chartTopRate   = 60.0 // percent
	chartRateStep  = 10.0
	chartIncomeTik = 5
)

func (p PDFFormatter) Format(report *Report) ([]byte, error) {
	if report.Sweep == nil {
		return nil, ErrNoSweep
	}
	sweep := report.Sweep

	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Title bar ────────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginL+2, marginT+1.5)
	title := fmt.Sprintf("MARGINAL TAX RATE BY WAGES  (%d, %s)", report.Year, sweep.Scenario.FilingStatus)
	pdf.CellFormat(contentW-4, 7, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	chart := chartArea{x: marginL + 14, y: marginT + 18, w: contentW - 60, h: 105}
	chart.maxIncome = sweep.MaxIncome.InexactFloat64()
	chart.topRate = chartTopRate
	for _, pt := range sweep.Points {
		if r := pt.Marginal.Total.InexactFloat64() * 100; r > chart.topRate {
			chart.topRate = r
		}
	}

	drawAxes(pdf, chart)
	drawStackedAreas(pdf, chart, sweep.Points)
	drawSegmentLabels(pdf, chart, sweep.Segments)
	drawMarkers(pdf, chart, sweep)
	drawLegend(pdf, chart.x+chart.w+6, chart.y)

	pdf.SetXY(marginL, chart.y+chart.h+12)
	drawSummaryTable(pdf, sweep.Summary, contentW)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type chartArea struct {
	x, y, w, h float64
	maxIncome  float64
	topRate    float64
}

func (c chartArea) px(income float64) float64 {
	if c.maxIncome <= 0 {
		return c.x
	}
	return c.x + income/c.maxIncome*c.w
}

func (c chartArea) py(ratePercent float64) float64 {
	return c.y + c.h - ratePercent/c.topRate*c.h
}

func drawAxes(pdf *fpdf.Fpdf, c chartArea) {
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	for r := 0.0; r <= c.topRate; r += chartRateStep {
		y := c.py(r)
		pdf.Line(c.x, y, c.x+c.w, y)
		pdf.Text(c.x-9, y+1, fmt.Sprintf("%.0f%%", r))
	}
	for i := 0; i <= chartIncomeTik; i++ {
		income := c.maxIncome * float64(i) / chartIncomeTik
		x := c.px(income)
		pdf.Line(x, c.y, x, c.y+c.h)
		pdf.Text(x-6, c.y+c.h+4, fmt.Sprintf("$%.0fk", income/1000))
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Line(c.x, c.y+c.h, c.x+c.w, c.y+c.h)
	pdf.Line(c.x, c.y, c.x, c.y+c.h)
}

// drawStackedAreas fills one polygon per component between the running sum
// below it and the running sum including it.
func drawStackedAreas(pdf *fpdf.Fpdf, c chartArea, points []domain.SweepPoint) {
	if len(points) < 2 {
		return
	}
	lower := make([]float64, len(points))
	for k := range domain.ComponentNames {
		upper := make([]float64, len(points))
		for i, pt := range points {
			upper[i] = lower[i] + pt.Marginal.Components()[k].InexactFloat64()*100
		}

		poly := make([]fpdf.PointType, 0, 2*len(points))
		for i, pt := range points {
			poly = append(poly, fpdf.PointType{X: c.px(pt.Income.InexactFloat64()), Y: c.py(upper[i])})
		}
		for i := len(points) - 1; i >= 0; i-- {
			poly = append(poly, fpdf.PointType{X: c.px(points[i].Income.InexactFloat64()), Y: c.py(lower[i])})
		}

		col := componentColors[k]
		pdf.SetFillColor(col[0], col[1], col[2])
		pdf.SetAlpha(0.8, "Normal")
		pdf.Polygon(poly, "F")
		pdf.SetAlpha(1, "Normal")
		lower = upper
	}
}

func drawSegmentLabels(pdf *fpdf.Fpdf, c chartArea, segments []domain.RateSegment) {
	pdf.SetFont("Helvetica", "B", 8)
	for _, seg := range segments {
		rate := seg.Rate.InexactFloat64()
		label := fmt.Sprintf("%.1f%%", rate)
		x := c.px(seg.MidIncome.InexactFloat64()) - pdf.GetStringWidth(label)/2
		pdf.Text(x, c.py(rate)-1.5, label)
	}
}

func drawMarkers(pdf *fpdf.Fpdf, c chartArea, sweep *domain.SweepResult) {
	pdf.SetFont("Helvetica", "", 7)
	wages := sweep.Scenario.Wages.InexactFloat64()
	if wages >= 0 && wages <= c.maxIncome {
		x := c.px(wages)
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.4)
		pdf.Line(x, c.y, x, c.y+c.h)
		pdf.Text(x+1, c.y+3, "Your wages")
	}

	if sweep.ShowIRMAALine && sweep.NextIRMAA != nil {
		x := c.px(sweep.NextIRMAA.InexactFloat64())
		pdf.SetDrawColor(192, 57, 43)
		pdf.SetLineWidth(0.4)
		pdf.SetDashPattern([]float64{1.5, 1}, 0)
		pdf.Line(x, c.y, x, c.y+c.h)
		pdf.SetDashPattern([]float64{}, 0)
		pdf.SetTextColor(192, 57, 43)
		pdf.Text(x+1, c.y+7, "Next IRMAA "+FormatCurrency(*sweep.NextIRMAA))
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
}

func drawLegend(pdf *fpdf.Fpdf, x, y float64) {
	pdf.SetFont("Helvetica", "", 8)
	for k, name := range domain.ComponentNames {
		col := componentColors[k]
		pdf.SetFillColor(col[0], col[1], col[2])
		pdf.Rect(x, y+float64(k)*6, 4, 4, "F")
		pdf.Text(x+6, y+float64(k)*6+3.3, name)
	}
}

func drawSummaryTable(pdf *fpdf.Fpdf, s domain.Summary, width float64) {
	rows := [][2]string{
		{"Wages / LTCG / Social Security", fmt.Sprintf("%s / %s / %s", FormatCurrency(s.Scenario.Wages), FormatCurrency(s.Scenario.CapitalGains), FormatCurrency(s.Scenario.SocialSecurity))},
		{"Total Tax", FormatCurrency(s.TotalTax)},
		{"Effective Rate", FormatPercentage(s.EffectiveRate)},
		{"Taxable Social Security", FormatCurrency(s.Breakdown.TaxableSocialSecurity)},
		{"Senior Deduction Used", FormatCurrency(s.Breakdown.SeniorDeductionUsed)},
		{"LTCG Marginal / Effective", fmt.Sprintf("%s%% / %s", s.Breakdown.TopCapitalGainsRate.String(), FormatPercentage(s.CapitalGainsEffectiveRate))},
	}

	labelW := width * 0.4
	pdf.SetFont("Helvetica", "", 9)
	for i, r := range rows {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.CellFormat(labelW, 6, r[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(width-labelW, 6, r[1], "1", 1, "R", true, 0, "")
	}
}
