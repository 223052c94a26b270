package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxgraph/internal/tui/tuistyles"
)

// DataSeries is one stacked layer of the chart. Points are percentages
// sampled evenly across [0, XMax].
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// Marker is a vertical line drawn at an x value
type Marker struct {
	X     float64
	Label string
	Char  rune
	Color lipgloss.Color
}

// SegmentLabel is a text label placed above the stack at an x value
type SegmentLabel struct {
	X    float64
	Text string
}

// ASCIIChart draws a stacked area chart of marginal-rate components
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Markers    []Marker
	Segments   []SegmentLabel
	XMax       float64
	Width      int
	Height     int
	ShowLegend bool
}

const yAxisWidth = 5

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Series:     []*DataSeries{},
		Width:      72,
		Height:     14,
		ShowLegend: true,
	}
}

// AddSeries stacks a layer on top of the previous ones
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
	})
	return c
}

// WithXMax sets the income at the right edge of the chart
func (c *ASCIIChart) WithXMax(xMax float64) *ASCIIChart {
	c.XMax = xMax
	return c
}

// WithMarker adds a vertical marker line
func (c *ASCIIChart) WithMarker(m Marker) *ASCIIChart {
	c.Markers = append(c.Markers, m)
	return c
}

// WithSegments sets the labels drawn above the stack
func (c *ASCIIChart) WithSegments(labels []SegmentLabel) *ASCIIChart {
	c.Segments = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 || c.samples() < 2 || c.plotWidth() < 2 || c.Height < 2 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(tuistyles.ColorPrimary)
		content.WriteString(titleStyle.Render(c.Title))
		content.WriteString("\n")
	}

	top := c.topRate()
	content.WriteString(c.renderSegmentLine())
	content.WriteString(c.renderGrid(top))
	content.WriteString(c.renderXAxisLabels())

	if c.ShowLegend {
		content.WriteString("\n")
		content.WriteString(c.renderLegend())
	}
	return content.String()
}

func (c *ASCIIChart) plotWidth() int {
	return c.Width - yAxisWidth - 2
}

func (c *ASCIIChart) samples() int {
	n := math.MaxInt
	for _, s := range c.Series {
		n = min(n, len(s.Points))
	}
	return n
}

// column maps an x value to a plot column, -1 when outside the chart
func (c *ASCIIChart) column(x float64) int {
	if c.XMax <= 0 || x < 0 || x > c.XMax {
		return -1
	}
	return int(math.Round(x / c.XMax * float64(c.plotWidth()-1)))
}

// stackAt returns the cumulative layer tops for a plot column
func (c *ASCIIChart) stackAt(col int) []float64 {
	n := c.samples()
	idx := int(math.Round(float64(col) / float64(c.plotWidth()-1) * float64(n-1)))
	tops := make([]float64, len(c.Series))
	sum := 0.0
	for k, s := range c.Series {
		sum += math.Max(s.Points[idx], 0)
		tops[k] = sum
	}
	return tops
}

// topRate picks a y-axis ceiling: the tallest stack plus headroom, rounded up to 10
func (c *ASCIIChart) topRate() float64 {
	highest := 0.0
	for col := 0; col < c.plotWidth(); col++ {
		tops := c.stackAt(col)
		highest = math.Max(highest, tops[len(tops)-1])
	}
	return math.Max(40, math.Ceil(highest*1.1/10)*10)
}

func (c *ASCIIChart) renderSegmentLine() string {
	line := []rune(strings.Repeat(" ", c.plotWidth()))
	for _, seg := range c.Segments {
		col := c.column(seg.X)
		if col < 0 {
			continue
		}
		text := []rune(seg.Text)
		start := col - len(text)/2
		if start < 0 || start+len(text) > len(line) {
			continue
		}
		free := true
		for i := start - 1; i <= start+len(text); i++ {
			if i >= 0 && i < len(line) && line[i] != ' ' {
				free = false
			}
		}
		if free {
			copy(line[start:], text)
		}
	}
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorForeground)
	return strings.Repeat(" ", yAxisWidth+2) + labelStyle.Render(string(line)) + "\n"
}

func (c *ASCIIChart) renderGrid(top float64) string {
	width := c.plotWidth()
	stacks := make([][]float64, width)
	for col := range stacks {
		stacks[col] = c.stackAt(col)
	}
	markerAt := make(map[int]Marker, len(c.Markers))
	for _, m := range c.Markers {
		if col := c.column(m.X); col >= 0 {
			markerAt[col] = m
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	cellHeight := top / float64(c.Height)

	var out strings.Builder
	for row := c.Height - 1; row >= 0; row-- {
		label := ""
		if row == c.Height-1 || row%4 == 0 {
			label = fmt.Sprintf("%.0f%%", float64(row+1)*cellHeight)
		}
		out.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yAxisWidth, label)))
		out.WriteString(axisStyle.Render(" │"))

		level := (float64(row) + 0.5) * cellHeight
		var run strings.Builder
		runStyle := lipgloss.NewStyle()
		flush := func() {
			if run.Len() > 0 {
				out.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < width; col++ {
			char, style := ' ', lipgloss.NewStyle()
			if layer := layerAt(stacks[col], level); layer >= 0 {
				char, style = '█', lipgloss.NewStyle().Foreground(c.Series[layer].Color)
			} else if m, ok := markerAt[col]; ok {
				char, style = m.Char, lipgloss.NewStyle().Foreground(m.Color)
			}
			if style.GetForeground() != runStyle.GetForeground() {
				flush()
				runStyle = style
			}
			run.WriteRune(char)
		}
		flush()
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(axisStyle.Render(" └" + strings.Repeat("─", width)))
	out.WriteString("\n")
	return out.String()
}

// layerAt returns the index of the layer covering level, -1 above the stack
func layerAt(tops []float64, level float64) int {
	for k, t := range tops {
		if level < t {
			return k
		}
	}
	return -1
}

func (c *ASCIIChart) renderXAxisLabels() string {
	width := c.plotWidth()
	const ticks = 4
	line := []rune(strings.Repeat(" ", width+8))
	for i := 0; i <= ticks; i++ {
		x := c.XMax * float64(i) / ticks
		text := []rune(formatChartValue(x))
		start := c.column(x) - len(text)/2
		if i == 0 {
			start = 0
		}
		if start+len(text) > len(line) {
			start = len(line) - len(text)
		}
		copy(line[max(start, 0):], text)
	}
	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return strings.Repeat(" ", yAxisWidth+2) + labelStyle.Render(strings.TrimRight(string(line), " "))
}

// renderLegend renders the chart legend
func (c *ASCIIChart) renderLegend() string {
	var items []string

	for _, series := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(series.Color).Render("█")
		name := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(series.Name)
		items = append(items, fmt.Sprintf("%s %s", symbol, name))
	}
	for _, m := range c.Markers {
		if m.Label == "" {
			continue
		}
		symbol := lipgloss.NewStyle().Foreground(m.Color).Render(string(m.Char))
		items = append(items, fmt.Sprintf("%s %s", symbol, m.Label))
	}

	legendStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted)

	return legendStyle.Render(strings.Join(items, "  "))
}

// formatChartValue formats an income for the x axis
func formatChartValue(value float64) string {
	if math.Abs(value) >= 1000000 {
		return fmt.Sprintf("$%.1fM", value/1000000)
	} else if math.Abs(value) >= 1000 {
		return fmt.Sprintf("$%.0fK", value/1000)
	}
	return fmt.Sprintf("$%.0f", value)
}
