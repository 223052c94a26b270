package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxgraph/internal/tui/tuistyles"
)

// MetricCard displays a single headline figure with a label and an optional note
type MetricCard struct {
	Label string
	Value string
	Note  string
	Width int
	Tone  lipgloss.Color // value colour; empty uses the default
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 22,
	}
}

// WithNote adds a muted line under the value
func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

// WithTone colours the value, e.g. red for an IRMAA breach
func (m *MetricCard) WithTone(c lipgloss.Color) *MetricCard {
	m.Tone = c
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	valueStyle := tuistyles.MetricValueStyle
	if m.Tone != "" {
		valueStyle = valueStyle.Foreground(m.Tone)
	}

	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + valueStyle.Render(m.Value)
	if m.Note != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Note)
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(content)
}

// MetricGrid renders multiple metric cards in a grid layout
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	rows := []string{}
	currentRow := []string{}

	for i, card := range cards {
		currentRow = append(currentRow, card.Render())

		// Start new row when we reach column limit or end of cards
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
