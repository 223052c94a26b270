package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxgraph/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider displays an adjustable dollar amount with a visual slider
type ParameterSlider struct {
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	BigStep     decimal.Decimal
	Width       int // Total width of slider bar
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a new slider over [min, max] moving by step
func NewParameterSlider(label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	p := &ParameterSlider{
		Label:   label,
		Min:     min,
		Max:     max,
		Step:    step,
		BigStep: step.Mul(decimal.NewFromInt(10)),
		Width:   30,
	}
	p.SetValue(value)
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment increases the value by one step, stopping at Max
func (p *ParameterSlider) Increment() { p.SetValue(p.Value.Add(p.Step)) }

// Decrement decreases the value by one step, stopping at Min
func (p *ParameterSlider) Decrement() { p.SetValue(p.Value.Sub(p.Step)) }

// IncrementBig increases the value by BigStep
func (p *ParameterSlider) IncrementBig() { p.SetValue(p.Value.Add(p.BigStep)) }

// DecrementBig decreases the value by BigStep
func (p *ParameterSlider) DecrementBig() { p.SetValue(p.Value.Sub(p.BigStep)) }

// SetValue sets the value directly, clamping to min/max
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	p.Value = decimal.Min(p.Max, decimal.Max(p.Min, value))
}

// Fraction returns the value's position within the range, from 0 to 1
func (p *ParameterSlider) Fraction() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// Render returns the styled slider: label and value on one line, bar below
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	marker := "  "
	if p.IsFocused {
		marker = "▸ "
	}
	content.WriteString(marker + labelStyle.Render(p.Label) + "  " + valueStyle.Render(tuistyles.FormatCurrency(p.Value)))
	content.WriteString("\n  ")
	content.WriteString(p.renderSliderBar())

	if p.Description != "" && p.IsFocused {
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString("\n  ")
		content.WriteString(descStyle.Render(p.Description))
	}
	return content.String()
}

// renderSliderBar creates the visual slider bar
func (p *ParameterSlider) renderSliderBar() string {
	filled := int(float64(p.Width)*p.Fraction() + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}

	trackStyle := tuistyles.SliderTrackStyle
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if empty := p.Width - max(filled, 1); empty > 0 {
		bar.WriteString(trackStyle.Render(strings.Repeat("─", empty)))
	}
	bar.WriteString("]")
	return bar.String()
}

// RenderCompact returns a single-line version
func (p *ParameterSlider) RenderCompact() string {
	return fmt.Sprintf("%s: %s", p.Label, tuistyles.FormatCurrency(p.Value))
}
