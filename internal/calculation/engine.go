package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/shopspring/decimal"
)

// Logger is the minimal logging surface the engine needs
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log output
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// CalculationEngine evaluates scenarios against a schedule table
type CalculationEngine struct {
	Table  *domain.ScheduleTable
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine over a schedule table
func NewCalculationEngine(table *domain.ScheduleTable) *CalculationEngine {
	return &CalculationEngine{
		Table:  table,
		Logger: NopLogger{},
	}
}

// SetLogger sets the engine logger; nil silences logging
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Schedule looks up the schedule for a filing status
func (ce *CalculationEngine) Schedule(status domain.FilingStatus) (domain.TaxSchedule, error) {
	if ce.Table == nil {
		return domain.TaxSchedule{}, fmt.Errorf("calculation engine has no schedule table")
	}
	return ce.Table.Lookup(status)
}

// Evaluate validates the scenario, looks up its schedule and computes the breakdown
func (ce *CalculationEngine) Evaluate(scenario domain.Scenario) (domain.TaxBreakdown, error) {
	if err := scenario.Validate(); err != nil {
		return domain.TaxBreakdown{}, fmt.Errorf("invalid scenario: %w", err)
	}
	schedule, err := ce.Schedule(scenario.FilingStatus)
	if err != nil {
		return domain.TaxBreakdown{}, err
	}
	result := Evaluate(schedule, scenario)
	ce.Logger.Debugf("evaluated %s wages=%s ltcg=%s ss=%s senior=%t: ordinary=%s ltcg=%s niit=%s",
		scenario.FilingStatus, scenario.Wages, scenario.CapitalGains, scenario.SocialSecurity, scenario.IsSenior,
		result.OrdinaryTax.StringFixed(2), result.CapitalGainsTax.StringFixed(2), result.NIIT.StringFixed(2))
	return result, nil
}

// Summarize evaluates a scenario and derives the headline figures shown next to the chart
func (ce *CalculationEngine) Summarize(scenario domain.Scenario) (*domain.Summary, error) {
	breakdown, err := ce.Evaluate(scenario)
	if err != nil {
		return nil, err
	}
	schedule, err := ce.Schedule(scenario.FilingStatus)
	if err != nil {
		return nil, err
	}
	return buildSummary(schedule, scenario, breakdown), nil
}

// Summarize computes the summary for a scenario directly from a schedule
func Summarize(schedule domain.TaxSchedule, scenario domain.Scenario) *domain.Summary {
	return buildSummary(schedule, scenario, Evaluate(schedule, scenario))
}

func buildSummary(schedule domain.TaxSchedule, scenario domain.Scenario, breakdown domain.TaxBreakdown) *domain.Summary {
	totalTax := breakdown.TotalTax()
	totalIncome := scenario.Clamped().TotalIncome()

	summary := &domain.Summary{
		Scenario:                  scenario,
		Breakdown:                 breakdown,
		TotalTax:                  totalTax,
		TotalIncome:               totalIncome,
		EffectiveRate:             domain.Percent(totalTax, totalIncome),
		StandardDeduction:         schedule.StandardDeduction,
		CapitalGainsEffectiveRate: domain.Percent(breakdown.CapitalGainsTax.Add(breakdown.NIIT), scenario.CapitalGains),
	}

	if next, ok := schedule.NextIRMAAThreshold(scenario.Wages); ok {
		summary.NextIRMAAThreshold = &next
	}
	risk, tiers, distance := CalculateIRMAARiskStatus(scenario.Wages, schedule)
	summary.IRMAA = domain.IRMAAStatus{
		Risk:           risk,
		Tier:           getTierName(tiers),
		DistanceToNext: distance,
	}
	return summary
}

// DefaultWages returns the wage value a presentation layer resets to when
// the filing status changes: the new status's standard deduction.
func (ce *CalculationEngine) DefaultWages(status domain.FilingStatus) (decimal.Decimal, error) {
	schedule, err := ce.Schedule(status)
	if err != nil {
		return decimal.Zero, err
	}
	return schedule.StandardDeduction, nil
}
