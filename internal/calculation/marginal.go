package calculation

import (
	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/shopspring/decimal"
)

// Decompose derives component marginal rates from breakdowns evaluated at
// income (low) and income+delta (high). The ordinary component is the
// floored residual, so components can overlap near bracket edges and
// overlapping phase-outs. A non-positive delta yields zero rates.
func Decompose(low, high domain.TaxBreakdown, delta decimal.Decimal, senior bool) domain.MarginalRates {
	if !delta.IsPositive() {
		return domain.MarginalRates{}
	}

	prevailing := low.TopOrdinaryRate.Div(hundred)

	total := high.TotalTax().Sub(low.TotalTax()).Div(delta)
	niit := high.NIIT.Sub(low.NIIT).Div(delta)
	gains := high.CapitalGainsTax.Sub(low.CapitalGainsTax).Div(delta)
	ss := high.TaxableSocialSecurity.Sub(low.TaxableSocialSecurity).Div(delta).Mul(prevailing)

	seniorLoss := decimal.Zero
	if senior {
		seniorLoss = low.SeniorDeductionUsed.Sub(high.SeniorDeductionUsed).Div(delta).Mul(prevailing)
	}

	ordinary := floorZero(total.Sub(niit).Sub(ss).Sub(gains).Sub(seniorLoss))

	return domain.MarginalRates{
		Total:          total,
		Ordinary:       ordinary,
		CapitalGains:   gains,
		SocialSecurity: ss,
		SeniorPhaseout: seniorLoss,
		NIIT:           niit,
	}
}

// MarginalAt evaluates a scenario at its wages and wages+delta and decomposes the difference
func MarginalAt(schedule domain.TaxSchedule, scenario domain.Scenario, delta decimal.Decimal) (domain.TaxBreakdown, domain.MarginalRates) {
	low := Evaluate(schedule, scenario)
	high := Evaluate(schedule, scenario.WithWages(scenario.Wages.Add(delta)))
	return low, Decompose(low, high, delta, scenario.IsSenior)
}
