package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBreakdown is the decomposed result of evaluating one scenario
type TaxBreakdown struct {
	OrdinaryTax           decimal.Decimal `json:"ordinary_tax"`
	CapitalGainsTax       decimal.Decimal `json:"capital_gains_tax"`
	NIIT                  decimal.Decimal `json:"niit"`
	TaxableSocialSecurity decimal.Decimal `json:"taxable_social_security"`
	TopOrdinaryRate       decimal.Decimal `json:"top_ordinary_rate"`      // percent
	TopCapitalGainsRate   decimal.Decimal `json:"top_capital_gains_rate"` // percent
	SeniorDeductionUsed   decimal.Decimal `json:"senior_deduction_used"`
}

// TotalTax returns ordinary tax plus capital gains tax plus NIIT
func (tb TaxBreakdown) TotalTax() decimal.Decimal {
	return tb.OrdinaryTax.Add(tb.CapitalGainsTax).Add(tb.NIIT)
}

// Equal reports whether two breakdowns carry the same amounts
func (tb TaxBreakdown) Equal(other TaxBreakdown) bool {
	return tb.OrdinaryTax.Equal(other.OrdinaryTax) &&
		tb.CapitalGainsTax.Equal(other.CapitalGainsTax) &&
		tb.NIIT.Equal(other.NIIT) &&
		tb.TaxableSocialSecurity.Equal(other.TaxableSocialSecurity) &&
		tb.TopOrdinaryRate.Equal(other.TopOrdinaryRate) &&
		tb.TopCapitalGainsRate.Equal(other.TopCapitalGainsRate) &&
		tb.SeniorDeductionUsed.Equal(other.SeniorDeductionUsed)
}

// Percent returns part/whole*100, or zero when whole is not positive
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}

// Summary is the headline view of a single scenario
type Summary struct {
	Scenario                  Scenario         `json:"scenario"`
	Breakdown                 TaxBreakdown     `json:"breakdown"`
	TotalTax                  decimal.Decimal  `json:"total_tax"`
	TotalIncome               decimal.Decimal  `json:"total_income"`
	EffectiveRate             decimal.Decimal  `json:"effective_rate"` // percent
	StandardDeduction         decimal.Decimal  `json:"standard_deduction"`
	CapitalGainsEffectiveRate decimal.Decimal  `json:"capital_gains_effective_rate"` // percent, LTCG tax plus NIIT over gains
	NextIRMAAThreshold        *decimal.Decimal `json:"next_irmaa_threshold,omitempty"`
	IRMAA                     IRMAAStatus      `json:"irmaa"`
}
