package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/rgehrsitz/taxgraph/internal/tui/components"
	"github.com/rgehrsitz/taxgraph/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	sections := []string{
		m.renderTitleBar(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderInputs(), "  ", m.renderMetrics()),
		m.renderChart(),
	}
	if m.err != nil {
		sections = append(sections, ErrorStyle.Render("Error: "+m.err.Error()))
	}
	sections = append(sections, m.renderStatusBar())

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderTitleBar renders the application title and the active filing status
func (m Model) renderTitleBar() string {
	year := 0
	if m.engine != nil && m.engine.Table != nil {
		year = m.engine.Table.Year()
	}
	title := TitleStyle.Render(fmt.Sprintf("TAXGRAPH - %d Marginal Tax Rate Analyzer", year))

	status := m.filingStatus.String()
	if m.loading {
		status += " • calculating..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(status))
}

// renderInputs renders the sliders and toggles
func (m Model) renderInputs() string {
	rows := make([]string, 0, len(m.sliders)+4)
	for _, s := range m.sliders {
		rows = append(rows, s.WithWidth(28).Render())
	}
	rows = append(rows,
		"",
		renderToggle("f", "Filing status", m.filingStatus.String(), true),
		renderToggle("a", "Age 65+", onOff(m.isSenior), m.isSenior),
		renderToggle("i", "IRMAA line", onOff(m.showIRMAA), m.showIRMAA),
	)
	return BorderStyle.Render(strings.Join(rows, "\n"))
}

func renderToggle(key, label, value string, on bool) string {
	style := ToggleOffStyle
	if on {
		style = ToggleOnStyle
	}
	return fmt.Sprintf("%s %-14s %s", StatusKeyStyle.Render("["+key+"]"), label, style.Render(value))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// renderMetrics renders the headline metric cards
func (m Model) renderMetrics() string {
	s := m.summary
	if s == nil {
		return BorderStyle.Render("Calculating...")
	}

	irmaa := components.NewMetricCard("IRMAA", string(s.IRMAA.Risk)).WithNote(s.IRMAA.Tier)
	switch s.IRMAA.Risk {
	case domain.IRMAARiskBreach:
		irmaa.WithTone(ColorDanger)
	case domain.IRMAARiskWarning:
		irmaa.WithTone(ColorWarning)
	default:
		irmaa.WithTone(ColorSuccess)
	}
	if s.NextIRMAAThreshold != nil {
		irmaa.WithNote(fmt.Sprintf("%s, next at %s", s.IRMAA.Tier, FormatCurrency(*s.NextIRMAAThreshold)))
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("Total Tax", FormatCurrency(s.TotalTax)).
			WithNote("of " + FormatCurrency(s.TotalIncome) + " income"),
		components.NewMetricCard("Effective Rate", s.EffectiveRate.StringFixed(1)+"%"),
		components.NewMetricCard("Taxable Social Security", FormatCurrency(s.Breakdown.TaxableSocialSecurity)),
		components.NewMetricCard("Senior Deduction Used", FormatCurrency(s.Breakdown.SeniorDeductionUsed)),
		components.NewMetricCard("LTCG Rate", s.Breakdown.TopCapitalGainsRate.String()+"% marginal").
			WithNote(s.CapitalGainsEffectiveRate.StringFixed(1) + "% effective"),
		irmaa,
	}
	return components.MetricGrid(cards, 2)
}

// renderChart renders the stacked marginal-rate chart of the latest sweep
func (m Model) renderChart() string {
	if m.sweep == nil || len(m.sweep.Points) == 0 {
		return ""
	}

	chart := components.NewASCIIChart("Marginal rate by wages").
		WithSize(max(m.width-4, 40), 14).
		WithXMax(m.sweep.MaxIncome.InexactFloat64())

	hundred := decimal.NewFromInt(100)
	for k, name := range domain.ComponentNames {
		points := make([]float64, len(m.sweep.Points))
		for i, p := range m.sweep.Points {
			points[i] = p.Marginal.Components()[k].Mul(hundred).InexactFloat64()
		}
		chart.AddSeries(name, points, tuistyles.ComponentColors[k])
	}

	labels := make([]components.SegmentLabel, 0, len(m.sweep.Segments))
	for _, seg := range m.sweep.Segments {
		labels = append(labels, components.SegmentLabel{
			X:    seg.MidIncome.InexactFloat64(),
			Text: seg.Rate.StringFixed(0) + "%",
		})
	}
	chart.WithSegments(labels)

	chart.WithMarker(components.Marker{
		X:     m.sweep.Scenario.Wages.InexactFloat64(),
		Label: "your wages",
		Char:  '│',
		Color: tuistyles.ColorForeground,
	})
	if m.sweep.ShowIRMAALine && m.sweep.NextIRMAA != nil {
		chart.WithMarker(components.Marker{
			X:     m.sweep.NextIRMAA.InexactFloat64(),
			Label: "next IRMAA " + FormatCurrency(*m.sweep.NextIRMAA),
			Char:  '┆',
			Color: ColorDanger,
		})
	}

	return ActiveBorderStyle.Render(chart.Render())
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	return StatusBarStyle.Width(max(m.width-2, 0)).Render(m.help.View(m.keys))
}
