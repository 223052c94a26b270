package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/taxgraph/internal/calculation"
	"github.com/rgehrsitz/taxgraph/internal/config"
	"github.com/rgehrsitz/taxgraph/internal/domain"
)

func newTestModel(t *testing.T, initial domain.Scenario) Model {
	t.Helper()
	table, err := config.Default2026()
	require.NoError(t, err)
	m, err := NewModel(calculation.NewCalculationEngine(table), initial)
	require.NoError(t, err)
	return m
}

// run executes a command and feeds its message back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func press(t *testing.T, m Model, keys string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch keys {
	case "right", "left", "up", "down":
		msg = tea.KeyMsg{Type: map[string]tea.KeyType{"right": tea.KeyRight, "left": tea.KeyLeft, "up": tea.KeyUp, "down": tea.KeyDown}[keys]}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, domain.Scenario{Wages: decimal.NewFromInt(-5), FilingStatus: domain.MarriedFilingJointly})

	s := m.Scenario()
	assert.Equal(t, domain.MarriedFilingJointly, s.FilingStatus)
	assert.True(t, s.Wages.IsZero(), "Should clamp negative wages")
	assert.True(t, m.showIRMAA)
	assert.True(t, m.sliders[0].IsFocused)
	assert.Nil(t, m.Summary())
}

func TestNewModel_RejectsUnknownFilingStatus(t *testing.T) {
	table, err := config.Default2026()
	require.NoError(t, err)
	engine := calculation.NewCalculationEngine(table)

	for _, status := range []domain.FilingStatus{0, domain.FilingStatus(9)} {
		_, err := NewModel(engine, domain.Scenario{Wages: decimal.NewFromInt(50000), FilingStatus: status})
		assert.ErrorIs(t, err, domain.ErrUnknownFilingStatus, "status %d", int(status))
	}
}

func TestModel_InitCalculates(t *testing.T) {
	m := newTestModel(t, domain.Scenario{Wages: decimal.NewFromInt(100000), FilingStatus: domain.Single})
	m = run(t, m, m.Init())

	require.NoError(t, m.err)
	require.NotNil(t, m.Summary())
	require.NotNil(t, m.Sweep())
	assert.False(t, m.loading)
	assert.Equal(t, "13170", m.Summary().TotalTax.String())
	assert.Len(t, m.Sweep().Points, calculation.DefaultSweepPoints)
}

func TestModel_SliderAdjustsWages(t *testing.T) {
	m := newTestModel(t, domain.Scenario{Wages: decimal.NewFromInt(50000), FilingStatus: domain.Single})

	m, cmd := press(t, m, "right")
	assert.Equal(t, "51000", m.Scenario().Wages.String())
	m = run(t, m, cmd)
	require.NotNil(t, m.Summary())
	assert.Equal(t, "51000", m.Summary().Scenario.Wages.String())

	m, _ = press(t, m, "L")
	assert.Equal(t, "61000", m.Scenario().Wages.String())
}

func TestModel_FocusMovesBetweenSliders(t *testing.T) {
	m := newTestModel(t, domain.Scenario{FilingStatus: domain.Single})

	m, _ = press(t, m, "down")
	assert.Equal(t, sliderCapitalGains, m.focus)
	m, _ = press(t, m, "right")
	assert.Equal(t, "1000", m.Scenario().CapitalGains.String())
	assert.True(t, m.Scenario().Wages.IsZero())

	m, _ = press(t, m, "up")
	m, _ = press(t, m, "up")
	assert.Equal(t, sliderSocialSecurity, m.focus, "Should wrap around")
}

func TestModel_ToggleFilingStatusResetsWages(t *testing.T) {
	m := newTestModel(t, domain.Scenario{Wages: decimal.NewFromInt(90000), FilingStatus: domain.Single})

	m, cmd := press(t, m, "f")
	require.NotNil(t, cmd)
	assert.Equal(t, domain.MarriedFilingJointly, m.Scenario().FilingStatus)
	assert.Equal(t, "32200", m.Scenario().Wages.String())

	m, _ = press(t, m, "f")
	assert.Equal(t, domain.Single, m.Scenario().FilingStatus)
	assert.Equal(t, "16100", m.Scenario().Wages.String())
}

func TestModel_Toggles(t *testing.T) {
	m := newTestModel(t, domain.Scenario{Wages: decimal.NewFromInt(100000), FilingStatus: domain.Single})

	m, _ = press(t, m, "a")
	assert.True(t, m.Scenario().IsSenior)

	m, cmd := press(t, m, "i")
	assert.False(t, m.showIRMAA)
	m = run(t, m, cmd)
	require.NotNil(t, m.Sweep())
	assert.False(t, m.Sweep().ShowIRMAALine)
}

func TestModel_DropsStaleResults(t *testing.T) {
	m := newTestModel(t, domain.Scenario{Wages: decimal.NewFromInt(50000), FilingStatus: domain.Single})

	m, stale := press(t, m, "right")
	m, fresh := press(t, m, "right")

	m = run(t, m, stale)
	assert.Nil(t, m.Summary(), "Should ignore results for an older input")
	assert.True(t, m.loading)

	m = run(t, m, fresh)
	require.NotNil(t, m.Summary())
	assert.Equal(t, "52000", m.Summary().Scenario.Wages.String())
}

func TestModel_QuitAndHelp(t *testing.T) {
	m := newTestModel(t, domain.Scenario{FilingStatus: domain.Single})

	m, _ = press(t, m, "?")
	assert.True(t, m.showHelp)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, domain.Scenario{Wages: decimal.NewFromInt(100000), SocialSecurity: decimal.NewFromInt(20000), FilingStatus: domain.Single, IsSenior: true})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = next.(Model)

	before := m.View()
	assert.Contains(t, before, "TAXGRAPH - 2026 Marginal Tax Rate Analyzer")
	assert.Contains(t, before, "Calculating...")

	m = run(t, m, m.Init())
	view := m.View()
	assert.Contains(t, view, "Wages")
	assert.Contains(t, view, "Total Tax")
	assert.Contains(t, view, "Marginal rate by wages")
	assert.Contains(t, view, "your wages")
	assert.Contains(t, view, "next IRMAA $109,000")
}
