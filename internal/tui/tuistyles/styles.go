// Package tuistyles holds the colour palette and lipgloss styles shared by the
// analyzer model and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Palette
var (
	ColorPrimary   = lipgloss.Color("#3498DB")
	ColorSecondary = lipgloss.Color("#9B59B6")
	ColorAccent    = lipgloss.Color("#F1C40F")
	ColorSuccess   = lipgloss.Color("#2ECC71")
	ColorWarning   = lipgloss.Color("#E67E22")
	ColorDanger    = lipgloss.Color("#E74C3C")
	ColorInfo      = lipgloss.Color("#1ABC9C")

	ColorBackground = lipgloss.Color("#1E1E1E")
	ColorForeground = lipgloss.Color("#ECF0F1")
	ColorMuted      = lipgloss.Color("#7F8C8D")
	ColorBorder     = lipgloss.Color("#34495E")
)

// ComponentColors colour the stacked marginal-rate components in
// domain.ComponentNames order.
var ComponentColors = []lipgloss.Color{
	ColorPrimary,
	ColorSuccess,
	ColorWarning,
	ColorSecondary,
	ColorDanger,
}

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorBorder)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	MetricLabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground)

	ParameterValueStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	ToggleOnStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	ToggleOffStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)
)

// MetricTrendStyle returns the style for an up or down trend
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the trend direction
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders whole dollars with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Round(0).Abs().StringFixed(0)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if amount.Round(0).IsNegative() {
		return "-$" + s
	}
	return "$" + s
}
