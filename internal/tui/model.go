package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxgraph/internal/calculation"
	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/rgehrsitz/taxgraph/internal/tui/components"
)

// Slider ranges in dollars
var (
	maxWages          = decimal.NewFromInt(500000)
	maxCapitalGains   = decimal.NewFromInt(500000)
	maxSocialSecurity = decimal.NewFromInt(100000)
	incomeStep        = decimal.NewFromInt(1000)
	benefitStep       = decimal.NewFromInt(500)
)

// Slider positions
const (
	sliderWages = iota
	sliderCapitalGains
	sliderSocialSecurity
)

// Model is the interactive marginal-rate analyzer
type Model struct {
	// Terminal dimensions
	width  int
	height int

	engine *calculation.CalculationEngine

	// Inputs
	sliders      []*components.ParameterSlider
	focus        int
	filingStatus domain.FilingStatus
	isSenior     bool
	showIRMAA    bool

	// Latest results
	summary *domain.Summary
	sweep   *domain.SweepResult
	seq     int // incremented on every input change

	keys     keyMap
	help     help.Model
	showHelp bool

	// Error state
	err error

	// Loading state
	loading bool
}

// NewModel creates the analyzer seeded with an initial scenario. Negative
// amounts are clamped to zero; a filing status without a schedule is an error.
func NewModel(engine *calculation.CalculationEngine, initial domain.Scenario) (Model, error) {
	initial = initial.Clamped()
	if _, err := engine.Schedule(initial.FilingStatus); err != nil {
		return Model{}, err
	}

	sliders := []*components.ParameterSlider{
		components.NewParameterSlider("Wages", initial.Wages, decimal.Zero, maxWages, incomeStep).
			WithDescription("Ordinary income; this is the variable swept on the chart"),
		components.NewParameterSlider("Long-term Capital Gains", initial.CapitalGains, decimal.Zero, maxCapitalGains, incomeStep).
			WithDescription("Stacked on top of ordinary taxable income"),
		components.NewParameterSlider("Social Security", initial.SocialSecurity, decimal.Zero, maxSocialSecurity, benefitStep).
			WithDescription("Annual benefits; up to 85% becomes taxable"),
	}
	sliders[0].SetFocused(true)

	return Model{
		width:        100,
		height:       40,
		engine:       engine,
		sliders:      sliders,
		filingStatus: initial.FilingStatus,
		isSenior:     initial.IsSenior,
		showIRMAA:    true,
		keys:         defaultKeyMap(),
		help:         help.New(),
		loading:      true,
	}, nil
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return recalculateCmd(m.engine, m.Scenario(), m.showIRMAA, m.seq)
}

// Scenario returns the scenario described by the current inputs
func (m Model) Scenario() domain.Scenario {
	return domain.Scenario{
		Wages:          m.sliders[sliderWages].Value,
		CapitalGains:   m.sliders[sliderCapitalGains].Value,
		SocialSecurity: m.sliders[sliderSocialSecurity].Value,
		FilingStatus:   m.filingStatus,
		IsSenior:       m.isSenior,
	}
}

// Summary returns the most recent summary, nil before the first calculation
func (m Model) Summary() *domain.Summary { return m.summary }

// Sweep returns the most recent sweep, nil before the first calculation
func (m Model) Sweep() *domain.SweepResult { return m.sweep }

// recalculateCmd returns a command that summarizes and sweeps a scenario
func recalculateCmd(engine *calculation.CalculationEngine, scenario domain.Scenario, showIRMAA bool, seq int) tea.Cmd {
	return func() tea.Msg {
		summary, err := engine.Summarize(scenario)
		if err != nil {
			return SweepCompleteMsg{Seq: seq, Err: err}
		}
		sweep, err := engine.Sweep(context.Background(), calculation.SweepRequest{
			Scenario:  scenario,
			ShowIRMAA: showIRMAA,
		})
		return SweepCompleteMsg{Seq: seq, Summary: summary, Sweep: sweep, Err: err}
	}
}
