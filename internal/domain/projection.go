package domain

import (
	"github.com/shopspring/decimal"
)

// MarginalRates attributes the marginal tax rate at one income level to its drivers.
// Values are fractions of a dollar (0.22 means 22 cents per extra dollar).
// The components are an attribution heuristic and need not sum exactly to Total.
type MarginalRates struct {
	Total          decimal.Decimal `json:"total"`
	Ordinary       decimal.Decimal `json:"ordinary"`
	CapitalGains   decimal.Decimal `json:"capital_gains"`
	SocialSecurity decimal.Decimal `json:"social_security"`
	SeniorPhaseout decimal.Decimal `json:"senior_phaseout"`
	NIIT           decimal.Decimal `json:"niit"`
}

// Components returns the stacked components in chart order: ordinary, LTCG, SS, senior, NIIT
func (mr MarginalRates) Components() []decimal.Decimal {
	return []decimal.Decimal{mr.Ordinary, mr.CapitalGains, mr.SocialSecurity, mr.SeniorPhaseout, mr.NIIT}
}

// ComponentNames are the legend labels matching Components
var ComponentNames = []string{"Ordinary", "LTCG Bump", "Social Security", "Senior Phase-out", "NIIT"}

// SweepPoint is one sampled income level of a marginal-rate sweep
type SweepPoint struct {
	Income    decimal.Decimal `json:"income"`
	Breakdown TaxBreakdown    `json:"breakdown"`
	Marginal  MarginalRates   `json:"marginal"`
}

// RateSegment is a run of samples sharing the same total marginal rate
type RateSegment struct {
	StartIncome decimal.Decimal `json:"start_income"`
	EndIncome   decimal.Decimal `json:"end_income"`
	MidIncome   decimal.Decimal `json:"mid_income"`
	Rate        decimal.Decimal `json:"rate"` // percent, total marginal rate at the midpoint
}

// SweepResult is the full output of a marginal-rate sweep
type SweepResult struct {
	Scenario      Scenario         `json:"scenario"`
	Summary       Summary          `json:"summary"`
	MaxIncome     decimal.Decimal  `json:"max_income"`
	Delta         decimal.Decimal  `json:"delta"`
	Points        []SweepPoint     `json:"points"`
	Segments      []RateSegment    `json:"segments"`
	NextIRMAA     *decimal.Decimal `json:"next_irmaa,omitempty"` // set only when inside the swept range
	ShowIRMAALine bool             `json:"show_irmaa_line"`
}
